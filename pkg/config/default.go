package config

// Default returns the built-in configuration: the FastAPI return-annotation
// cleanup this tool was written for. It snapshots every .py file in
// app/routers and strips the redundant Dict return annotations from the
// auth and familles routers.
//
// Loading a config file replaces this entirely; there is no merging.
func Default() *Config {
	return &Config{
		WorkDir: "app/routers",
		Backup: BackupArgs{
			Prefix:   "backup",
			Patterns: []string{"*.py"},
		},
		Targets: []Target{
			{
				File: "auth.py",
				Rules: []RewriteRule{
					{
						Pattern: `(def logout\(response: Response\)) -> Dict\[str, str\]:`,
						Replace: `${1}:`,
					},
				},
			},
			{
				File: "familles.py",
				Rules: []RewriteRule{
					{
						Pattern: `\) -> Dict\[str, Any\]:$`,
						Replace: `):`,
					},
					{
						Pattern: `\) -> Dict\[str, str\]:$`,
						Replace: `):`,
					},
				},
			},
		},
	}
}
