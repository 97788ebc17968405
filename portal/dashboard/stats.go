package dashboard

import (
	"sort"

	"studentportal/portal/model"
)

type Stats struct {
	Total               int
	AverageAge          int
	PopularCourse       string
	AverageSatisfaction int
}

// Compute derives the summary cards from the full list. It is recomputed on every render.
func Compute(students []model.Student) Stats {
	if len(students) == 0 {
		return Stats{}
	}
	return Stats{
		Total:               len(students),
		AverageAge:          averageInt(students, "age"),
		PopularCourse:       popularCourse(students),
		AverageSatisfaction: averageInt(students, "satisfaction"),
	}
}

// averageInt is the rounded mean of key read as an integer. Missing and non-numeric values count
// as 0.
func averageInt(students []model.Student, key string) int {
	var sum float64
	for _, s := range students {
		if n, ok := ParseInt(s.Get(key)); ok {
			sum += n
		}
	}
	return clampInt(Round(sum / float64(len(students))))
}

// popularCourse picks the most frequent non-empty course. Ties go to the course seen first.
func popularCourse(students []model.Student) string {
	type count struct {
		course string
		n      int
	}
	var counts []count
	index := make(map[string]int)
	for _, s := range students {
		c := s.Get("course")
		if !truthy(c) {
			continue
		}
		course := stringify(c)
		i, ok := index[course]
		if !ok {
			i = len(counts)
			index[course] = i
			counts = append(counts, count{course: course})
		}
		counts[i].n++
	}
	if len(counts) == 0 {
		return ""
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].n > counts[j].n })
	return counts[0].course
}
