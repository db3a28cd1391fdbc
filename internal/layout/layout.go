// Package layout maps a classified, dated file to its destination path.
// Building a path is a pure function of the inputs; collision handling is
// left to the mover so planning never touches the filesystem.
package layout

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pqsoccerboy17/downloads-organizer/internal/classify"
)

var mediaKindFolders = map[classify.MediaKind]string{
	classify.MediaPhoto: "Photos",
	classify.MediaVideo: "Videos",
	classify.MediaAudio: "Audio",
}

const (
	mediaTimestampLayout = "2006-01-02_15-04-05"
	documentDateLayout   = "2006-01-02"
)

var topicCaser = cases.Title(language.English)

// Builder computes destination paths under the two archive roots.
type Builder struct {
	taxBase   string
	mediaBase string
}

func NewBuilder(taxBase, mediaBase string) *Builder {
	return &Builder{taxBase: taxBase, mediaBase: mediaBase}
}

// MediaDestination places a media file under
// <mediaBase>/<year>/<month name>/<kind folder>/ with the capture timestamp
// prefixed to the original name, so files sort chronologically inside each
// month regardless of what the camera called them.
func (b *Builder) MediaDestination(srcPath string, kind classify.MediaKind, when time.Time) string {
	folder, ok := mediaKindFolders[kind]
	if !ok {
		folder = "Other"
	}
	name := when.Format(mediaTimestampLayout) + "_" + filepath.Base(srcPath)
	return filepath.Join(
		b.mediaBase,
		fmt.Sprintf("%d", when.Year()),
		when.Month().String(),
		folder,
		name,
	)
}

// DocumentDestination places a classified document under the tax tree:
//
//	<taxBase>/<year> Tax Year/<category folder>/<kind folder[ - identity]>/<date>_-_<token>.pdf
//
// for identity-bearing documents, or
//
//	<taxBase>/<year> Tax Year/<topic folder>/<original name>
//
// for topic documents, which keep their original filename since no identity
// token exists to build a canonical one from.
func (b *Builder) DocumentDestination(srcPath string, cat classify.Category, when time.Time) string {
	yearFolder := fmt.Sprintf("%d Tax Year", when.Year())

	if cat.Class == classify.Topic {
		return filepath.Join(b.taxBase, yearFolder, TopicFolder(cat.Kind), filepath.Base(srcPath))
	}

	kindFolder := cat.KindFolder
	if cat.Identity != "" {
		kindFolder = kindFolder + " - " + cat.Identity
	}

	token := cat.Identity
	if token == "" {
		token = cat.Kind
	}
	name := when.Format(documentDateLayout) + "_-_" + token + filepath.Ext(srcPath)

	return filepath.Join(b.taxBase, yearFolder, cat.CategoryFolder, kindFolder, name)
}

// TopicFolder turns a topic identifier into its display folder name:
// "tax_forms" becomes "Tax Forms".
func TopicFolder(topicID string) string {
	return topicCaser.String(strings.ReplaceAll(topicID, "_", " "))
}
