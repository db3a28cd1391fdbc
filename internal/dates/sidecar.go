package dates

import (
	"encoding/json"
	"os"
	"time"
)

// sidecarSuffix is appended to the full media filename, so IMG_001.jpg pairs
// with IMG_001.jpg.json.
const sidecarSuffix = ".json"

type sidecarPayload struct {
	TakenTimestamp    int64 `json:"taken_timestamp"`
	CreationTimestamp int64 `json:"creation_timestamp"`
	MediaMetadata     struct {
		PhotoMetadata struct {
			TakenTimestamp int64 `json:"taken_timestamp"`
		} `json:"photo_metadata"`
	} `json:"media_metadata"`
}

// sidecarDate reads the sibling sidecar for a media file, if one exists, and
// returns the best timestamp it carries. All timestamps are epoch seconds; a
// zero value means the field was absent.
func sidecarDate(mediaPath string) (time.Time, bool) {
	raw, err := os.ReadFile(mediaPath + sidecarSuffix)
	if err != nil {
		return time.Time{}, false
	}

	var payload sidecarPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return time.Time{}, false
	}

	for _, epoch := range []int64{
		payload.TakenTimestamp,
		payload.MediaMetadata.PhotoMetadata.TakenTimestamp,
		payload.CreationTimestamp,
	} {
		if epoch > 0 {
			return time.Unix(epoch, 0), true
		}
	}
	return time.Time{}, false
}
