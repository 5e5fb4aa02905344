package clients

import "time"

const twitterTimeLayout = time.RubyDate

// Raw timeline records in provider-native v1.1 shape. Only the fields the
// normalizer projects are declared; everything else in the payload is
// ignored on unmarshal.

type Hashtag struct {
	Text string `json:"text"`
}

type Media struct {
	Type string `json:"type"`
}

type UserMention struct {
	ScreenName string `json:"screen_name"`
}

// Entities holds the nested entity lists of a tweet. Media is frequently
// absent from the payload entirely; consumers must treat a nil slice as an
// empty list, not an error.
type Entities struct {
	Hashtags     []Hashtag     `json:"hashtags"`
	Media        []Media       `json:"media"`
	UserMentions []UserMention `json:"user_mentions"`
}

type User struct {
	ID               int64   `json:"id"`
	IDStr            string  `json:"id_str"`
	ScreenName       string  `json:"screen_name"`
	Name             string  `json:"name"`
	CreatedAt        string  `json:"created_at"`
	Description      string  `json:"description"`
	Location         string  `json:"location"`
	ProfileImageURL  string  `json:"profile_image_url"`
	ProfileBannerURL string  `json:"profile_banner_url"`
	TimeZone         *string `json:"time_zone"`
	FavouritesCount  int     `json:"favourites_count"`
	FollowersCount   int     `json:"followers_count"`
	FriendsCount     int     `json:"friends_count"`
	StatusesCount    int     `json:"statuses_count"`
}

type Tweet struct {
	ID               int64    `json:"id"`
	IDStr            string   `json:"id_str"`
	CreatedAt        string   `json:"created_at"`
	FullText         string   `json:"full_text"`
	DisplayTextRange []int    `json:"display_text_range"`
	Lang             string   `json:"lang"`
	FavoriteCount    int      `json:"favorite_count"`
	RetweetCount     int      `json:"retweet_count"`
	Entities         Entities `json:"entities"`
	User             User     `json:"user"`
}

// CreationTime parses the provider's ruby-style timestamp.
func (t *Tweet) CreationTime() (time.Time, error) {
	return time.Parse(twitterTimeLayout, t.CreatedAt)
}
