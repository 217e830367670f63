package event

import "time"

// VideoView is emitted once per watch-page hit and consumed by the
// view-count worker.
type VideoView struct {
	VideoID  uint      `json:"video_id"`
	ViewedAt time.Time `json:"viewed_at"`
}
