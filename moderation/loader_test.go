package moderation

import (
	"room-lab/errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestCensoredLoader_LoadAll(t *testing.T) {
	req := require.New(t)
	files := fstest.MapFS{
		"censored/en.txt": {Data: []byte("# comment\nbadger\r\nsnake\n\n")},
		"censored/fr.txt": {Data: []byte("blaireau\nbadger\n")},
		"censored/README": {Data: []byte("ignored")},
	}

	data, err := NewCensoredLoader(files).LoadAll("censored")

	req.NoError(err)
	req.Equal([]string{"badger", "blaireau", "snake"}, data.Words)
	req.ElementsMatch([]string{"en", "fr"}, data.Languages)
}

func TestCensoredLoader_RejectsDirectories(t *testing.T) {
	req := require.New(t)
	files := fstest.MapFS{
		"censored/en.txt":   {Data: []byte("badger\n")},
		"censored/nested/x": {Data: []byte("snake\n")},
	}

	_, err := NewCensoredLoader(files).LoadAll("censored")

	req.ErrorIs(err, errors.ErrOnlyCensoredFiles)
}

func TestCensoredLoader_Empty(t *testing.T) {
	req := require.New(t)
	files := fstest.MapFS{
		"censored/en.txt": {Data: []byte("# nothing\n")},
	}

	_, err := NewCensoredLoader(files).LoadAll("censored")

	req.ErrorIs(err, errors.ErrEmptyWords)
}

func TestDefaultLoader_ShipsWords(t *testing.T) {
	req := require.New(t)

	data, err := DefaultLoader().LoadAll("censored")

	req.NoError(err)
	req.NotEmpty(data.Words)
	req.Contains(data.Languages, "en")
}
