package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, Date("2024-06-10"), d)

	_, err = ParseDate("10/06/2024")
	assert.Error(t, err)
	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateNext(t *testing.T) {
	cases := []struct {
		in, want Date
	}{
		{"2024-06-10", "2024-06-11"},
		{"2024-06-30", "2024-07-01"},
		{"2024-12-31", "2025-01-01"},
		{"2024-02-28", "2024-02-29"}, // leap year
		{"2023-02-28", "2023-03-01"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.Next(), "next of %s", c.in)
	}

	assert.Equal(t, Date("junk"), Date("junk").Next())
}

func TestDateSplit(t *testing.T) {
	y, m, d, ok := Date("2024-02-15").Split()
	require.True(t, ok)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)
	assert.Equal(t, 15, d)

	_, _, _, ok = Date("nope").Split()
	assert.False(t, ok)
}

func TestDateOf(t *testing.T) {
	at := time.Date(2024, time.June, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Date("2024-06-10"), DateOf(at))
}

func TestJoinFields(t *testing.T) {
	assert.Equal(t, "工作 - 报告 - 提交", JoinFields("工作", "报告", "提交"))
	assert.Equal(t, "work - submit", JoinFields("work", "", "submit"))
	assert.Equal(t, "work", JoinFields("", "work", ""))
	assert.Equal(t, "", JoinFields("", "", ""))
	assert.Equal(t, "a - b", JoinFields(" a ", "b", "  "))
}
