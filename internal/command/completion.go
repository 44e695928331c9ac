package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/acantu/hajjav/internal/meta"
)

const bashCompletionScript = `# bash completion for hajjav
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_hajjav()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "cache census hajj routes run completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--cols -a --color -c --filter -f --output -o --sort -s --titles -t"

    case "$cmd" in
    cache)
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            COMPREPLY=( $(compgen -W "status clear purge" -- "$cur") )
            return 0
        fi
        case "${COMP_WORDS[2]}" in
        status)
            local opts="$common"
            ;;
        purge)
            local opts="--hours"
            ;;
        *)
            local opts=""
            ;;
        esac
        ;;
    census)
      local opts="$common --limit -l"
            ;;
    hajj)
      local opts="$common --year -y"
            ;;
    routes)
      local opts="$common --year -y --export -e"
            ;;
    run)
      local opts="$common"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
  return 0
}

complete -F _hajjav hajjav
`

const zshCompletionScript = `#compdef hajjav

_hajjav() {
  local -a cmds
  cmds=(
    'cache:inspect and manage the result cache'
    'census:rank countries by Muslim population share'
    'hajj:show Hajj season dates per year'
    'routes:list resolved aviation routes'
    'run:load all datasets and summarize'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --cols)'{-a,--cols}'[columns to include]:cols'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort columns]:cols'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'hajjav commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    cache)
      _arguments -C \
        '1: :((status clear purge))' \
        $common \
        '--hours[age threshold in hours]:hours'
      ;;
    census)
      _arguments -C \
        $common \
        '(-l --limit)'{-l,--limit}'[number of countries]:limit'
      ;;
    hajj)
      _arguments -C \
        $common \
        '(-y --year)'{-y,--year}'[year]:year'
      ;;
    routes)
      _arguments -C \
        $common \
        '(-y --year)'{-y,--year}'[year]:year' \
        '(-e --export)'{-e,--export}'[export CSV file]:file:_files'
      ;;
    run)
      _arguments -C $common
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _hajjav hajjav
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: hajjav completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "hajjav completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
