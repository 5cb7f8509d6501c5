package models

// Problem is a problem descriptor returned by the upstream question API
type Problem struct {
	Title      string `json:"title"`
	TitleSlug  string `json:"titleSlug"`
	Difficulty string `json:"difficulty"`
}

// Link returns the canonical problem URL for the problem's slug
func (p Problem) Link() string {
	return "https://leetcode.com/problems/" + p.TitleSlug + "/"
}
