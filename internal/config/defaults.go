package config

// defaultYAML is the built-in policy baseline, merged underneath any user
// and project overrides. It is kept as YAML (rather than hand-built Go
// structs) because its size — roughly seventy always-allow entries plus a
// per-command rule table — is easier to read and diff as data than as code.
const defaultYAML = `
defaultDecision: ask
askOnSubshell: true

alwaysAllow:
  - ls
  - pwd
  - cat
  - less
  - more
  - head
  - tail
  - wc
  - file
  - stat
  - du
  - df
  - find
  - grep
  - egrep
  - fgrep
  - rg
  - ag
  - awk
  - sed
  - sort
  - uniq
  - cut
  - tr
  - diff
  - comm
  - tree
  - basename
  - dirname
  - realpath
  - readlink
  - echo
  - printf
  - which
  - whereis
  - type
  - whoami
  - id
  - hostname
  - uname
  - date
  - env
  - printenv
  - history
  - man
  - help
  - true
  - false
  - test
  - "["
  - sleep
  - yes
  - seq
  - xargs
  - tee
  - jq
  - yq
  - base64
  - md5sum
  - sha1sum
  - sha256sum
  - shasum
  - cksum
  - ps
  - top
  - free
  - uptime
  - lscpu
  - lsblk
  - lsof
  - netstat
  - ping
  - dig
  - nslookup
  - host
  - curl
  - wget
  - touch
  - mkdir

alwaysDeny:
  - sudo
  - su
  - doas
  - mkfs
  - fdisk
  - dd
  - shutdown
  - reboot
  - halt
  - poweroff
  - iptables
  - ip6tables
  - nft
  - useradd
  - userdel
  - usermod
  - groupadd
  - groupdel
  - crontab
  - systemctl
  - service
  - launchctl

globalDeny:
  - pattern: ':\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:'
    reason: "fork bomb pattern"
  - pattern: '>\s*/dev/sd[a-z]'
    reason: "direct write to a block device"
  - pattern: '\brm\s+(-[a-zA-Z]*[rR][a-zA-Z]*f[a-zA-Z]*\b|-[a-zA-Z]*f[a-zA-Z]*[rR][a-zA-Z]*\b|(-[a-zA-Z]*[rR][a-zA-Z]*\b|--recursive\b)\s+(-[a-zA-Z]*f[a-zA-Z]*\b|--force\b)|(-[a-zA-Z]*f[a-zA-Z]*\b|--force\b)\s+(-[a-zA-Z]*[rR][a-zA-Z]*\b|--recursive\b))'
    reason: "recursive force removal"

# knownDevTools is referenced below by the npx/bunx rules: package runners
# for ~40 common dev-tool binaries that are safe to run without asking,
# as opposed to arbitrary scripts fetched and executed through the runner.
devTools: &knownDevTools
  - eslint
  - prettier
  - tsc
  - typescript
  - jest
  - vitest
  - mocha
  - ava
  - webpack
  - webpack-cli
  - vite
  - rollup
  - parcel
  - babel
  - tailwindcss
  - postcss
  - stylelint
  - commitlint
  - husky
  - lint-staged
  - jsdoc
  - typedoc
  - depcheck
  - npm-check-updates
  - create-react-app
  - create-next-app
  - create-vite
  - next
  - nuxt
  - gatsby
  - cypress
  - playwright
  - serve
  - http-server
  - json-server
  - concurrently
  - cross-env
  - rimraf
  - turbo
  - nx
  - lerna

rules:
  - command: sh
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["--version", "--help"], argCount: { max: 1 } }
        decision: allow
        reason: "version/help query"
      - match: { anyArgMatches: ["-c"], argCount: { max: 1 } }
        decision: ask
        reason: "-c with no script argument"
  - command: bash
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["--version", "--help"] }
        decision: allow
        reason: "version/help query"
  - command: zsh
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["--version", "--help"] }
        decision: allow
        reason: "version/help query"

  - command: node
    default: allow
    argPatterns:
      - match: { anyArgMatches: ["-e", "--eval", "-p", "--print"] }
        decision: ask
        reason: "inline script evaluation"
      - match: { noArgs: true }
        decision: ask
        reason: "interactive REPL"

  - command: npm
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["install", "ci", "run", "test", "build", "start", "list", "ls", "outdated", "view", "audit", "--version", "-v"] }
        decision: allow
        reason: "standard package workflow command"
      - match: { anyArgMatches: ["publish", "unpublish", "deprecate", "owner", "access", "token", "adduser", "login", "logout"] }
        decision: ask
        reason: "registry operation"
  - command: pnpm
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["install", "add", "run", "test", "build", "start", "list", "outdated", "--version", "-v"] }
        decision: allow
        reason: "standard package workflow command"
      - match: { anyArgMatches: ["publish", "unpublish", "deprecate", "owner", "access", "token", "login", "logout"] }
        decision: ask
        reason: "registry operation"
  - command: yarn
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["install", "add", "run", "test", "build", "start", "list", "outdated", "--version", "-v"] }
        decision: allow
        reason: "standard package workflow command"
      - match: { anyArgMatches: ["publish", "unpublish", "owner", "access", "token", "login", "logout"] }
        decision: ask
        reason: "registry operation"
  - command: bun
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["install", "add", "run", "test", "build", "start", "--version", "-v"] }
        decision: allow
        reason: "standard package workflow command"
      - match: { anyArgMatches: ["publish"] }
        decision: ask
        reason: "registry operation"
  - command: npx
    default: ask
    argPatterns:
      - match: { anyArgMatches: *knownDevTools }
        decision: allow
        reason: "known dev-tool"
      - match: { anyArgMatches: ["tsx", "ts-node", "nodemon"] }
        decision: ask
        reason: "script runner"
  - command: bunx
    default: ask
    argPatterns:
      - match: { anyArgMatches: *knownDevTools }
        decision: allow
        reason: "known dev-tool"
      - match: { anyArgMatches: ["tsx", "ts-node", "nodemon"] }
        decision: ask
        reason: "script runner"

  - command: python
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["--version", "-V"] }
        decision: allow
        reason: "version query"
  - command: python3
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["--version", "-V"] }
        decision: allow
        reason: "version query"
  - command: pip
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["list", "show", "freeze", "--version"] }
        decision: allow
        reason: "read-only package query"
  - command: uv
    default: ask
  - command: pipx
    default: ask

  - command: git
    default: allow
    argPatterns:
      - match: { argsMatch: ["push\\s+.*--force"] }
        decision: ask
        reason: "force push rewrites remote history"
      - match: { argsMatch: ["reset\\s+--hard"] }
        decision: ask
        reason: "hard reset discards local changes"
      - match: { anyArgMatches: ["clean"] }
        decision: ask
        reason: "clean removes untracked files"
  - command: gh
    default: allow

  - command: make
    default: allow
  - command: cmake
    default: allow
  - command: go
    default: allow
    argPatterns:
      - match: { anyArgMatches: ["clean"], argsMatch: ["-cache"] }
        decision: ask
        reason: "clears the build cache"
  - command: cargo
    default: allow

  - command: docker
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["ps", "images", "logs", "inspect", "version", "info", "top", "stats"] }
        decision: allow
        reason: "read-only docker subcommand"
  - command: kubectl
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["get", "describe", "logs", "top", "version"] }
        decision: allow
        reason: "read-only kubectl subcommand"
  - command: ssh
    default: ask
  - command: sprite
    default: ask

  - command: rm
    default: ask
  - command: chmod
    default: ask
    argPatterns:
      - match: { argsMatch: ["-R\\s+777"] }
        decision: deny
        reason: "recursive world-writable permissions"
  - command: chown
    default: ask

  - command: apt
    default: ask
  - command: apt-get
    default: ask
  - command: brew
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["list", "info", "outdated", "--version"] }
        decision: allow
        reason: "read-only brew subcommand"
  - command: yum
    default: ask
  - command: dnf
    default: ask
  - command: pacman
    default: ask

  - command: terraform
    default: ask
    argPatterns:
      - match: { anyArgMatches: ["plan", "validate", "show", "output", "fmt", "version"] }
        decision: allow
        reason: "read-only terraform subcommand"
`

// Defaults returns the compiled built-in configuration. It panics on
// failure because defaultYAML is a compile-time constant: if it fails to
// compile, that's a bug in this package, not a runtime configuration error.
func Defaults() Configuration {
	cfg, err := parseSource([]byte(defaultYAML))
	if err != nil {
		panic("warden: built-in default configuration is invalid: " + err.Error())
	}
	return cfg
}
