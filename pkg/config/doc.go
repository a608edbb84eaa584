/*
Package config manages configuration parsing and validation for patchrc.

	            +-------------+
	            |   Config    |
	            | (WorkDir,   |
	            |  Targets)   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+-----+ +---+----+ +----+----+
	|   JSON    | |  YAML  | |   HCL   |
	+-----------+ +--------+ +---------+

🎯 Purpose:
- Describes which directory to snapshot and which files to rewrite
- Validates configuration values and fills in defaults
- Supports multiple config formats behind one loader
- Carries the built-in default ruleset for zero-config runs

🔄 Flow:
1. Load reads the file and picks a format from the extension
2. Format-specific decoding rejects unknown fields
3. Validate checks shape, cleans paths, applies defaults
4. The patcher receives a validated *Config

⚡ Key Responsibilities:
- Configuration parsing (JSON, YAML, HCL, .patchrc autodetect)
- Structural validation and defaulting
- Stable fingerprinting (Hash) for logs

📝 Design Philosophy:
The config package is the source of truth for what gets patched. It:
- Stays a plain data model; the rewrite engine owns regex semantics
- Rejects unknown fields so typos fail loudly instead of silently
- Makes configuration errors name the offending target and rule

🔍 Example:

	cfg, err := config.Load(ctx, ".patchrc.yaml")
	if err != nil {
		return err
	}

	// or run with the built-in ruleset
	cfg = config.Default()
*/
package config
