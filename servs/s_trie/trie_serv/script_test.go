package trie_serv_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rskv-p/rtrie/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec_Commands(t *testing.T) {
	s := newService(t, 32, false)

	out, err := s.Exec(`put 5 "hello world"`)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	out, err = s.Exec("put 0x5 again")
	require.NoError(t, err)
	assert.Equal(t, "replaced hello world", out)

	out, err = s.Exec("get 5")
	require.NoError(t, err)
	assert.Equal(t, "again", out)

	_, _ = s.Exec("put -1 neg")
	_, _ = s.Exec("put 9 nine")

	out, _ = s.Exec("first")
	assert.Equal(t, "-1: neg", out)
	out, _ = s.Exec("last")
	assert.Equal(t, "9: nine", out)
	out, _ = s.Exec("list")
	assert.Equal(t, "-1: neg\n5: again\n9: nine", out)
	out, _ = s.Exec("rlist 2")
	assert.Equal(t, "9: nine\n5: again", out)
	out, _ = s.Exec("ends 1")
	assert.Equal(t, "-1: neg\n--\n9: nine", out)

	out, _ = s.Exec("stats")
	assert.Contains(t, out, `"len":3`)
	out, _ = s.Exec("dump")
	assert.Contains(t, out, "bf=32")

	out, err = s.Exec("del 5")
	require.NoError(t, err)
	assert.Equal(t, "again", out)

	out, _ = s.Exec("help")
	assert.Contains(t, out, "commands:")
	out, err = s.Exec("   ")
	assert.NoError(t, err)
	assert.Empty(t, out)

	out, _ = s.Exec("clear")
	assert.Equal(t, "ok", out)
	assert.Zero(t, s.Stats().Len)
}

func TestExec_Errors(t *testing.T) {
	s := newService(t, 32, false)

	_, err := s.Exec("frobnicate")
	assert.ErrorIs(t, err, constant.ErrUnknownCommand)
	_, err = s.Exec("put 1")
	assert.ErrorIs(t, err, constant.ErrUsage)
	_, err = s.Exec("get one")
	assert.ErrorIs(t, err, constant.ErrBadKey)
	_, err = s.Exec("get 1")
	assert.ErrorIs(t, err, constant.ErrNotFound)
	_, err = s.Exec("list x")
	assert.ErrorIs(t, err, constant.ErrBadRequest)
	_, err = s.Exec(`put 1 "unterminated`)
	assert.ErrorIs(t, err, constant.ErrBadRequest)
	_, err = s.Exec("first")
	assert.ErrorIs(t, err, constant.ErrNotFound)

	assert.Equal(t, int64(7), s.Metrics()[constant.MetricErrors])
}

func TestRun_Script(t *testing.T) {
	s := newService(t, 8, true)
	script := strings.Join([]string{
		"# seed",
		"put 3 c",
		"",
		"put 1 a",
		"put 2 b",
		"bogus",
		"list",
	}, "\n")

	var out bytes.Buffer
	failed, err := s.Run(strings.NewReader(script), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Equal(t, "ok\nok\nok\nERR unknown command: \"bogus\"\n1: a\n2: b\n3: c\n", out.String())
}
