// Package keyfiles moves key bundles between the local filesystem and memory.
//
// # Scanning
//
// Scan reads the immediate entries of a directory into a bundle.Bundle.
// Subdirectories, symlinks and other non-regular files are skipped, as are
// files matching an exclude pattern. Any filename or file body that is not
// valid UTF-8 aborts the scan with ErrEncoding; no partial bundle is
// returned.
//
// # Materializing
//
// PrepareOutputDir creates the target directory or checks that an existing
// one is empty. Materialize then creates one file per bundle entry with
// O_EXCL, so an existing file is never overwritten. Permissions follow the
// key naming convention:
//
//	*.pub, *.public  0444
//	everything else  0400
//
// Materialize is not transactional. When it fails part way, the files it
// already created stay on disk and are listed in the returned
// *PartialWriteError.
package keyfiles
