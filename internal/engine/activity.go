package engine

import (
	"net/url"
	"time"

	"github.com/genricoloni/presenced/internal/domain"
)

const (
	youtubeLabel = "Search this song on YouTube"
	profileLabel = "Open user's last.fm profile"

	statusPlaying = "playing"
	statusPaused  = "paused"
)

// ButtonOptions selects the external links attached to an activity
type ButtonOptions struct {
	YouTube         bool
	ProfileNickname string
}

// Timestamps computes the progress bar for a snapshot observed at now.
// The start is anchored at now minus position so it stays stable across polls.
func Timestamps(snap domain.PlaybackSnapshot, now time.Time) *domain.Timestamps {
	start := now.Unix()
	if snap.HasPosition {
		start -= int64(snap.Position / time.Second)
	}

	switch {
	case snap.HasPosition && snap.Duration > 0 && snap.IsPlaying():
		return &domain.Timestamps{Start: start, End: start + int64(snap.Duration/time.Second)}
	case snap.HasPosition && snap.Duration > 0:
		return &domain.Timestamps{Start: start}
	case snap.IsPlaying():
		return &domain.Timestamps{Start: start}
	default:
		return &domain.Timestamps{End: start}
	}
}

// Buttons returns at most two external links for the track
func Buttons(id domain.TrackIdentity, opts ButtonOptions) []domain.Button {
	var buttons []domain.Button
	if opts.YouTube {
		query := url.QueryEscape(id.Artist + " - " + id.Title)
		buttons = append(buttons, domain.Button{
			Label: youtubeLabel,
			URL:   "https://www.youtube.com/results?search_query=" + query,
		})
	}
	if opts.ProfileNickname != "" {
		buttons = append(buttons, domain.Button{
			Label: profileLabel,
			URL:   "https://www.last.fm/user/" + url.PathEscape(opts.ProfileNickname),
		})
	}
	return buttons
}

// BuildActivity assembles the Listening activity for a snapshot
func BuildActivity(snap domain.PlaybackSnapshot, cover string, ts *domain.Timestamps, opts ButtonOptions) domain.Activity {
	if cover == "" {
		cover = domain.MissingCover
	}
	status := statusPaused
	if snap.IsPlaying() {
		status = statusPlaying
	}

	return domain.Activity{
		// Discord requires at least two characters
		Details: snap.Identity.Title + " ",
		State:   "by: " + snap.Identity.Artist,
		Type:    domain.ActivityListening,
		Assets: domain.Assets{
			LargeImage: cover,
			LargeText:  "album: " + snap.Identity.Album,
			SmallImage: status,
			SmallText:  status,
		},
		Timestamps: ts,
		Buttons:    Buttons(snap.Identity, opts),
	}
}
