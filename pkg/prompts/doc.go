// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package prompts provides user interaction primitives following UNIX conventions.

# Mode Detection

Non-interactive mode is enabled when ANY of these is true:

  - --non-interactive was given
  - KSA_NON_INTERACTIVE=1/true/yes/on environment variable
  - CI=1/true environment variable (GitHub Actions, GitLab CI, etc.)
  - stdin is not a TTY (piped/redirected/scripted)

# Option Precedence

Values are resolved in this order:

 1. Flags (--private-key=0x...)
 2. Environment variables (KSA_PRIVATE_KEY=0x...)
 3. Config file (ksa.config.yaml)
 4. Defaults
 5. Prompts (only if interactive/TTY)

Prompts never write to stdout, which is reserved for the deployed address.
*/
package prompts
