package entity

import (
	"time"
)

// Streamer is a tracked creator. VideoID is the featured video shown when
// the streamer is not live.
type Streamer struct {
	ID        string `json:"id" firestore:"id"`
	Name      string `json:"name" firestore:"name"`
	Game      string `json:"game" firestore:"game"`
	ChannelID string `json:"channel_id" firestore:"channelId"`
	VideoID   string `json:"video_id" firestore:"videoId"`
	SortOrder int    `json:"sort_order" firestore:"sortOrder"`
}

type VideoStats struct {
	VideoID           string    `json:"video_id"`
	ChannelID         string    `json:"channel_id"`
	Title             string    `json:"title"`
	Thumbnail         string    `json:"thumbnail,omitempty"`
	ViewCount         uint64    `json:"view_count"`
	LikeCount         uint64    `json:"like_count"`
	ConcurrentViewers uint64    `json:"concurrent_viewers"`
	IsLive            bool      `json:"is_live"`
	ViewsDisplay      string    `json:"views_display"`
	FetchedAt         time.Time `json:"fetched_at"`
}

type ChannelInfo struct {
	ChannelID          string    `json:"channel_id"`
	Title              string    `json:"title"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	SubscriberCount    uint64    `json:"subscriber_count"`
	SubscribersDisplay string    `json:"subscribers_display"`
	FetchedAt          time.Time `json:"fetched_at"`
}

// VideoSummary is a search hit: enough to render a card and to look up
// stats later.
type VideoSummary struct {
	VideoID     string    `json:"video_id"`
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

type StreamSnapshot struct {
	SelectedVideoID string                    `json:"selected_video_id,omitempty"`
	Selected        *VideoStats               `json:"selected,omitempty"`
	Streamers       []Streamer                `json:"streamers"`
	Videos          map[string]VideoStats     `json:"videos"`
	Channels        map[string]ChannelInfo    `json:"channels"`
	LiveStreams     map[string][]VideoSummary `json:"live_streams"`
	PopularVideos   map[string][]VideoSummary `json:"popular_videos"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

func NewStreamSnapshot() *StreamSnapshot {
	return &StreamSnapshot{
		Videos:        make(map[string]VideoStats),
		Channels:      make(map[string]ChannelInfo),
		LiveStreams:   make(map[string][]VideoSummary),
		PopularVideos: make(map[string][]VideoSummary),
	}
}

// Clone deep-copies the maps and slices so readers never observe a later
// poll cycle mutating their copy.
func (s *StreamSnapshot) Clone() *StreamSnapshot {
	out := NewStreamSnapshot()
	out.SelectedVideoID = s.SelectedVideoID
	out.UpdatedAt = s.UpdatedAt
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	out.Streamers = append([]Streamer(nil), s.Streamers...)
	for k, v := range s.Videos {
		out.Videos[k] = v
	}
	for k, v := range s.Channels {
		out.Channels[k] = v
	}
	for k, v := range s.LiveStreams {
		out.LiveStreams[k] = append([]VideoSummary(nil), v...)
	}
	for k, v := range s.PopularVideos {
		out.PopularVideos[k] = append([]VideoSummary(nil), v...)
	}
	return out
}
