package dto

// PageSection is one block of an informational page
type PageSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// PageResponse is the page model of a static informational page
type PageResponse struct {
	Slug     string        `json:"slug" example:"about"`
	Title    string        `json:"title" example:"About JavaMaster"`
	Sections []PageSection `json:"sections"`
}

// HomePageResponse is the landing page model
type HomePageResponse struct {
	Stats   HomeStats        `json:"stats"`
	Courses []CourseResponse `json:"courses"`
}
