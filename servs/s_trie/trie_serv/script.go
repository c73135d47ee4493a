// file: rtrie/servs/s_trie/trie_serv/script.go
package trie_serv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/recover"
)

const usage = `commands:
  put <key> <value...>   store value under key
  get <key>              print the value under key
  del <key>              remove key
  first | last           print the smallest or largest entry
  list [limit]           entries in ascending order
  rlist [limit]          entries in descending order
  ends <n>               n entries from each end, walked together
  stats                  trie shape and counters as JSON
  dump                   node layout
  clear                  drop every entry
  help                   this text`

// Exec runs one command line and returns its output without a trailing newline.
func (s *Service) Exec(line string) (out string, err error) {
	err = recover.RecoverFunc("exec", func() error {
		out, err = s.exec(line)
		return err
	})
	if err != nil {
		s.IncMetric(constant.MetricErrors)
	}
	return out, err
}

func (s *Service) exec(line string) (string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return "", fmt.Errorf("%w: %v", constant.ErrBadRequest, err)
	}
	if len(args) == 0 {
		return "", nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "put", "set":
		if len(args) < 2 {
			return "", fmt.Errorf("%w: put <key> <value>", constant.ErrUsage)
		}
		k, err := codec.ParseKey(args[0])
		if err != nil {
			return "", err
		}
		prev, replaced := s.Put(k, strings.Join(args[1:], " "))
		if replaced {
			return "replaced " + prev, nil
		}
		return "ok", nil

	case "get", "del", "delete", "rm":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: %s <key>", constant.ErrUsage, cmd)
		}
		k, err := codec.ParseKey(args[0])
		if err != nil {
			return "", err
		}
		if cmd == "get" {
			return s.Get(k)
		}
		return s.Delete(k)

	case "first", "last":
		get := s.First
		if cmd == "last" {
			get = s.Last
		}
		e, err := get()
		if err != nil {
			return "", err
		}
		return e.String(), nil

	case "list", "ls", "rlist":
		limit, err := optionalInt(args)
		if err != nil {
			return "", err
		}
		return joinEntries(s.Range(cmd == "rlist", limit)), nil

	case "ends":
		n, err := optionalInt(args)
		if err != nil || n <= 0 {
			return "", fmt.Errorf("%w: ends <n>", constant.ErrUsage)
		}
		front, back := s.Ends(n)
		return joinEntries(front) + "\n--\n" + joinEntries(back), nil

	case "stats":
		return string(codec.MustMarshal(s.Stats())), nil

	case "dump":
		var b strings.Builder
		s.Dump(&b)
		return strings.TrimRight(b.String(), "\n"), nil

	case "clear":
		s.Clear()
		return "ok", nil

	case "help", "?":
		return usage, nil
	}
	return "", fmt.Errorf("%w: %q", constant.ErrUnknownCommand, cmd)
}

// Run executes a script line by line, writing results and errors to w.
// Blank lines and lines starting with # are skipped. It returns the number of failed lines.
func (s *Service) Run(r io.Reader, w io.Writer) (int, error) {
	failed := 0
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out, err := s.Exec(line)
		if err != nil {
			failed++
			s.log.Warn().Int("line", n).Err(err).Msg("script command failed")
			fmt.Fprintf(w, "ERR %v\n", err)
			continue
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
	}
	return failed, sc.Err()
}

func optionalInt(args []string) (int, error) {
	switch len(args) {
	case 0:
		return 0, nil
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", constant.ErrBadRequest, args[0])
		}
		return n, nil
	}
	return 0, constant.ErrUsage
}

func joinEntries(entries []codec.Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}
