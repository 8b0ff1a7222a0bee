/*
Package config loads the exman tool configuration.

	                +-------------+
	                |   Config    |
	                | (Settings)  |
	                +------+------+
	                       |
	     +---------+-------+-------+---------+
	     |         |               |         |
	+----+---+ +---+----+    +-----+--+ +----+---+      +---------+
	|  YAML  | |  HCL   |    |  JSON  | |  TOML  | ---> | EXMAN_* |
	| Parser | | Parser |    | Parser | | Parser |      |   env   |
	+--------+ +--------+    +--------+ +--------+      +---------+

🎯 Purpose:
  - Locate the exercism workspace and the external tools exman drives
  - Let a file and the environment override the defaults

🔄 Flow:
 1. Pick a parser by file extension (a missing optional file means defaults)
 2. Parse the file with unknown fields rejected
 3. Apply EXMAN_* environment overrides
 4. Validate and fill defaults

🔍 Example:

	cfg, err := config.LoadOptional(ctx, ".exman.yaml")
	if err != nil {
		return err
	}
	fmt.Println(cfg.Editor)
*/
package config
