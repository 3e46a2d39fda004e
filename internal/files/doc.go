// Package files stores uploaded files and cleaned artifacts.
//
// Everything lives in a single storage directory addressed by bare file
// names. Uploads keep only the base name the client sent, so two uploads of
// the same name replace one another and the last write wins. Writes go
// through a temporary file and a rename, so a reader never sees half a file.
//
// Example usage:
//
//	store := files.NewStore(paths, logger)
//	path, err := store.SaveUpload(header.Filename, file)
//	...
//	f, info, err := store.Open(files.CleanedName(header.Filename))
package files
