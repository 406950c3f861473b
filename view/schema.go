package view

import "github.com/invopop/jsonschema"

// ScanResultSchema reflects the JSON schema of the scan result payload.
// The dashboard serves it for tooling that consumes stored raw files.
func ScanResultSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{}
	return reflector.Reflect(&ScanResult{})
}
