package roster

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const socialYAML = `
- id:
    bioguide: L1
  social:
    twitter: SenAlice
    twitter_id: 123456
    facebook: alice.page
- id:
    bioguide: L2
  social:
    facebook: bob.page
- id:
    bioguide: L3
  social:
    twitter: RepCarol
`

const legislatorYAML = `
- id:
    bioguide: L1
  bio:
    birthday: '1952-11-09'
    gender: F
  name:
    first: Alice
    last: Anders
  terms:
    - party: Democrat
    - party: Democrat
- id:
    bioguide: L2
  bio:
    gender: M
  name:
    first: Bob
    last: Burke
  terms:
    - party: Republican
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAccountsFiltersMissingHandles(t *testing.T) {
	path := writeTemp(t, "social.yaml", socialYAML)

	accounts, err := LoadAccounts(path)
	require.NoError(t, err)
	require.Equal(t, []Account{
		{Handle: "senalice", LegislatorID: "L1"},
		{Handle: "repcarol", LegislatorID: "L3"},
	}, accounts)
}

func TestLoadSocialAccounts(t *testing.T) {
	path := writeTemp(t, "social.yaml", socialYAML)

	rows, err := LoadSocialAccounts(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "senalice", rows[0].TwitterScreenName)
	require.Equal(t, "123456", rows[0].TwitterID)
	require.Empty(t, rows[1].TwitterID)
}

func TestLoadLegislators(t *testing.T) {
	path := writeTemp(t, "legislators.yaml", legislatorYAML)

	rows, err := LoadLegislators(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Democrat", rows[0].Party)
	require.NotNil(t, rows[0].Birthday)
	require.Equal(t, 1952, rows[0].Birthday.Year())
	require.Nil(t, rows[1].Birthday)
}

func TestLoadAccountsMissingFile(t *testing.T) {
	_, err := LoadAccounts(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
