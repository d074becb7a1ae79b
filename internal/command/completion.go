// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cfgdiff/cfgdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for cfgdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_cfgdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "show compare revisions completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --local -l --output -o --sort -s --titles -t"
    local store="--store --archive --format --passphrase -p"
    local show="--commands -x --context -C --context-lines --defaults -d --hide-secrets"

    case "$cmd" in
        show)
            local opts="$common $store $show --from --to"
            ;;
        compare)
            local opts="$common $store $show"
            ;;
        revisions)
            local opts="$common $store --filter -f --limit -n"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --archive)
            COMPREPLY=( $(compgen -W "local s3" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "json yaml hcl" -- "$cur") )
            return 0
            ;;
        --store)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Revision arguments may name snapshot files.
    if [[ "$cmd" == "compare" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
    fi
    return 0
}

complete -F _cfgdiff cfgdiff
`

const zshCompletionScript = `#compdef cfgdiff

_cfgdiff() {
  local -a cmds
  cmds=(
    'show:show configuration changes'
    'compare:compare two configuration revisions'
    'revisions:list archived configuration revisions'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-l --local)'{-l,--local}'[show local timestamps]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--store[store directory]:store:_directories'
  '--archive[archive type]:archive:(local s3)'
  '--format[snapshot format]:format:(json yaml hcl)'
  '(-p --passphrase)'{-p,--passphrase}'[encrypted snapshot passphrase]:passphrase'
  )

  local -a show
  show=(
  '(-x --commands)'{-x,--commands}'[print commands]'
  '(-C --context)'{-C,--context}'[show changes with context]'
  '--context-lines[lines of context]:lines'
  '(-d --defaults)'{-d,--defaults}'[include defaults]'
  '--hide-secrets[mask secret values]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'cfgdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    show)
      _arguments -C \
        $common \
        $show \
        '--from[configuration to compare from]:from' \
        '--to[configuration to compare to]:to' \
        '*::PATH:'
      ;;
    compare)
      _arguments -C \
        $common \
        $show \
        '1:REV1:_files' \
        '2:REV2:_files' \
        '*::PATH:'
      ;;
    revisions)
      _arguments -C \
        $common \
        '(-f --filter)'{-f,--filter}'[filter revisions]:filter' \
        '(-n --limit)'{-n,--limit}'[limit revisions]:limit' \
        '*::REV:'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cfgdiff cfgdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(Writer(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(Writer(cmd), zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(Writer(cmd), zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(Writer(cmd), bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: cfgdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cfgdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
