package forms

import "strings"

// Post and Comment are the forum schemas; only validation is provided here.
type Post struct {
	Subject string `form:"subject" validate:"notblank"`
	Content string `form:"content" validate:"notblank"`
	Rating  string `form:"rating" validate:"oneof=1 2 3 4 5"`
}

func PostFrom(get Getter) Post {
	return Post{
		Subject: strings.TrimSpace(get("subject")),
		Content: get("content"),
		Rating:  strings.TrimSpace(get("rating")),
	}
}

// RatingValue returns the rating as an integer; call it only on a validated form.
func (p Post) RatingValue() int {
	n, _ := parseInt(p.Rating)
	return int(n)
}

type Comment struct {
	Content string `form:"content" validate:"notblank"`
}

func CommentFrom(get Getter) Comment {
	return Comment{Content: get("content")}
}
