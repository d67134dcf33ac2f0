package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"random-pairs-service/internal/domain"
)

func sampleRound(number int) domain.Round {
	return domain.Round{Number: number, Pairs: []domain.Pair{
		{First: domain.NewParticipant("Alice", "a@x.io"), Second: domain.NewParticipant("Bob", "b@x.io")},
		{First: domain.NewParticipant("Carol", "c@x.io"), Second: domain.Bye()},
	}}
}

func TestWriteRoundFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRound(&buf, sampleRound(1)))
	require.Equal(t, "Name_1,Email_1,Name_2,Email_2\nAlice,a@x.io,Bob,b@x.io\nCarol,c@x.io,,\n", buf.String())
}

func TestReadRoundRestoresRecords(t *testing.T) {
	var buf bytes.Buffer
	round := sampleRound(3)
	require.NoError(t, WriteRound(&buf, round))

	records, err := ReadRound(&buf)
	require.NoError(t, err)
	restored, err := domain.RoundFromRecords(3, records)
	require.NoError(t, err)
	require.Equal(t, round, restored)
}

func TestReadRoundRejectsForeignHeader(t *testing.T) {
	_, err := ReadRound(strings.NewReader("a,b,c,d\n1,2,3,4\n"))
	require.ErrorIs(t, err, ErrBadHeader)

	_, err = ReadRound(strings.NewReader(""))
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestWriteRunAndLoadRound(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pairings")
	paths, err := WriteRun(dir, []domain.Round{sampleRound(1), sampleRound(2)})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "pairing_1.csv"), filepath.Join(dir, "pairing_2.csv")}, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "staging directory must be removed")

	records, err := LoadRound(dir, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, domain.PairRecord{Name1: "Carol", Email1: "c@x.io"}, records[1])

	_, err = LoadRound(dir, 5)
	require.ErrorIs(t, err, domain.ErrRoundNotFound)
}

func TestWriteRunRemovesRoundsOfLongerPreviousRun(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteRun(dir, []domain.Round{sampleRound(1), sampleRound(2), sampleRound(3)})
	require.NoError(t, err)
	notes := filepath.Join(dir, "pairing_notes.csv")
	require.NoError(t, os.WriteFile(notes, []byte("keep"), 0o644))

	_, err = WriteRun(dir, []domain.Round{sampleRound(1)})
	require.NoError(t, err)

	_, err = LoadRound(dir, 1)
	require.NoError(t, err)
	for _, k := range []int{2, 3} {
		_, err = LoadRound(dir, k)
		require.ErrorIs(t, err, domain.ErrRoundNotFound)
	}
	require.FileExists(t, notes)
}
