// Package files provides discovery of seller order exports on disk.
//
// Discovery scans the configured data directory for CSV and Excel
// uploads, lists them newest first, and resolves user-supplied file
// names to safe paths inside the directory.
//
// Example usage:
//
//	discovery := files.NewDiscovery("data/uploads")
//
//	uploads, err := discovery.ListUploads()
//
//	info, err := discovery.Resolve("orders_march.csv")
package files
