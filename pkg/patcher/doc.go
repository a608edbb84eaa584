/*
Package patcher implements the backup-then-edit sequence at the core of patchrc.

	+-------------+
	|   Patcher   |
	| (Sequencer) |
	+------+------+
	       |
	+------+------+------+
	|             |      |
	+---+----+ +--+---+  |
	| Backup | |Rewrite|  Console
	+--------+ +------+

🎯 Purpose:
- Orchestrates the snapshot and the in-place line rewrites
- Enforces the ordering guarantee: the backup is complete before any edit
- Classifies the four failures an operator can act on

🔄 Flow:
1. Verify the working directory exists
2. Snapshot every matching file into a fresh timestamped directory
3. For each target, in order: read, apply rules, write back when changed
4. Report per-file progress on the console as each step completes

⚡ Key Responsibilities:
- Strictly sequential Run (each filesystem step completes before the next)
- Read-only Plan (concurrent scans, no backup, no writes)
- Error classification via sentinel errors

🤝 Interfaces:
- config: describes the working directory, snapshot settings and targets
- backup: owns the snapshot directory and manifest
- rewrite: owns rule compilation and per-line matching
- console: receives user-facing progress output

📝 Design Philosophy:
The patcher owns sequencing and nothing else. It delegates matching to the
rewrite package and copying to the backup package, so the ordering invariant
stays readable in one place. Failures outside the four classified cases
propagate wrapped but unclassified; nothing is suppressed or retried.

🔍 Example:

	p, err := patcher.New(patcher.Options{Config: cfg, Console: printer})
	if err != nil {
		return err
	}
	report, err := p.Run(ctx)
*/
package patcher
