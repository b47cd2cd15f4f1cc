// Package schema validates the two files the CLI keeps on disk, config.json
// and networks.json, against JSON schemas embedded in the binary. Validation
// issues are reported with instance paths so callers can log exactly which
// record or field was rejected.
package schema
