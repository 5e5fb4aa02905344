// Package roster loads the static legislator roster files. The pipeline
// consumes the roster only as a projected list of (handle, legislator id)
// pairs; the biographical rows are loaded separately for the bootstrap run.
package roster

import (
	"io/ioutil"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/politimux/politimux/model"
)

// Account is one fetchable timeline: the public handle plus the owning
// legislator. Handles are lower-cased at load, case-insensitive everywhere.
type Account struct {
	Handle       string
	LegislatorID string
}

type socialEntry struct {
	ID struct {
		Bioguide string `yaml:"bioguide"`
	} `yaml:"id"`
	Social struct {
		Twitter   string `yaml:"twitter"`
		TwitterID *int64 `yaml:"twitter_id"`
		Facebook  string `yaml:"facebook"`
	} `yaml:"social"`
}

type legislatorEntry struct {
	ID struct {
		Bioguide string `yaml:"bioguide"`
	} `yaml:"id"`
	Bio struct {
		Birthday string `yaml:"birthday"`
		Gender   string `yaml:"gender"`
		Religion string `yaml:"religion"`
	} `yaml:"bio"`
	Name struct {
		First string `yaml:"first"`
		Last  string `yaml:"last"`
	} `yaml:"name"`
	Terms []struct {
		Party string `yaml:"party"`
	} `yaml:"terms"`
}

// LoadAccounts reads the social-media roster file and projects it to the
// list of fetchable accounts. Entries lacking a twitter handle are dropped.
func LoadAccounts(path string) ([]Account, error) {
	entries, err := readSocialEntries(path)
	if err != nil {
		return nil, err
	}

	accounts := []Account{}
	for _, e := range entries {
		if e.Social.Twitter == "" {
			continue
		}
		accounts = append(accounts, Account{
			Handle:       strings.ToLower(e.Social.Twitter),
			LegislatorID: e.ID.Bioguide,
		})
	}
	return accounts, nil
}

// LoadSocialAccounts reads the same file into warehouse rows for the
// bootstrap load of the social table. Numeric twitter ids are serialized
// as text.
func LoadSocialAccounts(path string) ([]model.SocialAccount, error) {
	entries, err := readSocialEntries(path)
	if err != nil {
		return nil, err
	}

	rows := []model.SocialAccount{}
	for _, e := range entries {
		row := model.SocialAccount{
			LegislatorID:      e.ID.Bioguide,
			Facebook:          e.Social.Facebook,
			TwitterScreenName: strings.ToLower(e.Social.Twitter),
		}
		if e.Social.TwitterID != nil {
			row.TwitterID = strconv.FormatInt(*e.Social.TwitterID, 10)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadLegislators reads the biographical roster file into warehouse rows.
// Party is taken from the first recorded term, matching the summary the
// feature layer joins against.
func LoadLegislators(path string) ([]model.Legislator, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "fail to read legislator roster "+path)
	}

	var entries []legislatorEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "fail to parse legislator roster "+path)
	}

	rows := []model.Legislator{}
	for _, e := range entries {
		row := model.Legislator{
			LegislatorID: e.ID.Bioguide,
			Gender:       e.Bio.Gender,
			Religion:     e.Bio.Religion,
			FirstName:    e.Name.First,
			LastName:     e.Name.Last,
		}
		if e.Bio.Birthday != "" {
			birthday, err := time.Parse("2006-01-02", e.Bio.Birthday)
			if err != nil {
				return nil, errors.Wrapf(err, "fail to parse birthday for %s", e.ID.Bioguide)
			}
			row.Birthday = &birthday
		}
		if len(e.Terms) > 0 {
			row.Party = e.Terms[0].Party
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readSocialEntries(path string) ([]socialEntry, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "fail to read social roster "+path)
	}

	var entries []socialEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "fail to parse social roster "+path)
	}
	return entries, nil
}
