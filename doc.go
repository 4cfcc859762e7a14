// File: lixenwraith/envconfig/doc.go

// Package envconfig fills a typed template of configuration keys from
// environment variables (or any key-value source) and writes resolved values
// back to .env files without disturbing unrelated lines.
//
// Features:
//   - Type coercion driven by each key's default: number, boolean or string
//   - Mandatory keys: an empty string or NaN default must be supplied by the source
//   - All missing keys reported at once in a single *MissingKeysError
//   - Boolean spellings on/off, true/false, yes/no, enable/disable, enabled/disabled, extensible per call
//   - Error or halt semantics for startup checks
//   - Order-preserving .env merge with minimal quoting
//   - Templates from Go structs (`env` tags), TOML or YAML files
//
// Quick Start:
//
//	tmpl := envconfig.NewTemplate().
//	    Add("JWT_SECRET", "").         // mandatory string
//	    Add("HOST", "0.0.0.0").        // optional string
//	    Add("VERSION", math.NaN()).    // mandatory number
//	    Add("PORT", 8100).             // optional number
//	    Add("AUTO_SAVE", false)        // optional boolean
//
//	if err := envconfig.Resolve(tmpl, envconfig.Options{}); err != nil {
//	    var missing *envconfig.MissingKeysError
//	    if errors.As(err, &missing) {
//	        log.Fatalf("missing: %v", missing.Keys)
//	    }
//	}
//
//	port, _ := tmpl.Int64("PORT")
//
// Presence rules:
// Source values are trimmed. An empty value, a non-numeric value for a number
// key, or an unknown token for a boolean key is ignored and the default
// stays. Zero and false are ordinary values, never "missing".
//
// Persisting:
//
//	changed, err := envconfig.Save(tmpl, envconfig.SaveOptions{File: ".env"})
//
// Existing assignments are updated in place (the last one when a key repeats),
// new keys are appended, and the file is only rewritten when its content changes.
package envconfig
