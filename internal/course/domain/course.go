package domain

import (
	"time"

	userdomain "lms-backend/internal/user/domain"
	"lms-backend/pkg/uploader"
)

type Link struct {
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
}

// Reply is an append-only answer to a question.
type Reply struct {
	ID        string          `bson:"_id" json:"id"`
	User      userdomain.User `bson:"user" json:"user"`
	Answer    string          `bson:"answer" json:"answer"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
}

// Question is a thread opened by a user on one content item. Replies only
// ever grow; nothing edits or removes them.
type Question struct {
	ID        string          `bson:"_id" json:"id"`
	User      userdomain.User `bson:"user" json:"user"`
	Question  string          `bson:"question" json:"question"`
	Replies   []Reply         `bson:"questionReplies" json:"questionReplies"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
}

// Content is one lesson inside a course. The heavy fields (video url,
// links, suggestion, questions) are stripped from the public projection.
type Content struct {
	ID           string     `bson:"_id" json:"id"`
	Title        string     `bson:"title" json:"title"`
	Description  string     `bson:"description" json:"description"`
	VideoURL     string     `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	VideoSection string     `bson:"videoSection" json:"videoSection"`
	VideoLength  int        `bson:"videoLength" json:"videoLength"`
	Links        []Link     `bson:"links,omitempty" json:"links,omitempty"`
	Suggestion   string     `bson:"suggestion,omitempty" json:"suggestion,omitempty"`
	Questions    []Question `bson:"questions,omitempty" json:"questions,omitempty"`
}

type Benefit struct {
	Title string `bson:"title" json:"title"`
}

// Course is the whole-document aggregate the platform mutates. Q&A appends
// rely on the store's per-document atomicity, not on any locking here.
type Course struct {
	ID             string         `bson:"_id,omitempty" json:"id"`
	Name           string         `bson:"name" json:"name"`
	Description    string         `bson:"description" json:"description"`
	Price          float64        `bson:"price" json:"price"`
	EstimatedPrice float64        `bson:"estimatedPrice,omitempty" json:"estimatedPrice,omitempty"`
	Thumbnail      uploader.Asset `bson:"thumbnail,omitempty" json:"thumbnail"`
	Tags           string         `bson:"tags" json:"tags"`
	Level          string         `bson:"level" json:"level"`
	DemoURL        string         `bson:"demoUrl" json:"demoUrl"`
	Benefits       []Benefit      `bson:"benefits" json:"benefits"`
	Prerequisites  []Benefit      `bson:"prerequisites" json:"prerequisites"`
	Contents       []Content      `bson:"courseData" json:"courseData"`
	Ratings        float64        `bson:"ratings" json:"ratings"`
	Purchased      int            `bson:"purchased" json:"purchased"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// FindContent returns the content item with the given id, or nil.
func (c *Course) FindContent(contentID string) *Content {
	for i := range c.Contents {
		if c.Contents[i].ID == contentID {
			return &c.Contents[i]
		}
	}
	return nil
}

// FindQuestion returns the question with the given id, or nil.
func (ct *Content) FindQuestion(questionID string) *Question {
	for i := range ct.Questions {
		if ct.Questions[i].ID == questionID {
			return &ct.Questions[i]
		}
	}
	return nil
}
