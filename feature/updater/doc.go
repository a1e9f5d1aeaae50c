// Package updater drives reconciliation runs over the product catalog.
//
// For every product it loads the observation feed, skipping products without
// one, loads the product record, runs the reconciliation engine and writes the
// record back when a cycle changed. Failures are isolated per product. Recent
// unmatched observations of a run are handed to the alert sink once.
//
// The same operations are exposed over HTTP:
//
//	GET  /products               list product records
//	POST /products/update        update every product
//	GET  /products/:name/plan    dry run for one product
//	POST /products/:name/update  update one product
//	GET  /products/:name/history journaled changes
package updater
