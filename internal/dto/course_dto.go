package dto

type CourseStats struct {
	TotalCourses int64    `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

type LessonContent struct {
	CourseTitle  string `json:"course_title"`
	LessonNumber int    `json:"lesson_number"`
	LessonTitle  string `json:"lesson_title"`
	LessonLink   string `json:"lesson_link,omitempty"`
	ChunkCount   int    `json:"chunk_count"`
	Content      string `json:"content"`
}
