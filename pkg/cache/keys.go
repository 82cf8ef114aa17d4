package cache

import "fmt"

// Key builders. Every cached read and every invalidation goes through these
// so the keyspace stays consistent across application instances.

func UserFeedKey(userID uint) string { return fmt.Sprintf("user_feed_%d", userID) }

func PublicFeedKey() string { return "public_feed" }

func ProfileKey(userID uint) string { return fmt.Sprintf("profile_%d", userID) }

func PostKey(postID uint) string { return fmt.Sprintf("post_%d", postID) }

func PostsByCountryKey(countryID uint) string { return fmt.Sprintf("posts_by_country_%d", countryID) }

func TagPostsKey(tagID uint) string { return fmt.Sprintf("tag_posts_%d", tagID) }

func UserPostsKey(userID uint) string { return fmt.Sprintf("user_posts_%d", userID) }

func ProfileDetailKey(userID uint) string { return fmt.Sprintf("profile_detail_%d", userID) }

func CountriesWithPostsKey() string { return "countries_with_posts" }

func CountryDetailKey(countryID uint) string { return fmt.Sprintf("country_detail_%d", countryID) }

func ProfilesListKey() string { return "profiles_list" }

func PostCommentsKey(postID uint) string { return fmt.Sprintf("post_comments_%d", postID) }

func UniqueCountryCountKey(userID uint) string { return fmt.Sprintf("unique_country_count_%d", userID) }

func InterestedCountriesKey(userID uint) string { return fmt.Sprintf("interested_countries_%d", userID) }
