package student

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Grades is the fixed grade ladder, in promotion order.
var Grades = []string{
	"小1", "小2", "小3", "小4", "小5", "小6",
	"中1", "中2", "中3",
	"高1", "高2", "高3",
	"既卒",
}

// promotions maps each grade to its successor. Terminal grades (高3, 既卒)
// are absent and promote to themselves.
var promotions = map[string]string{
	"小1": "小2",
	"小2": "小3",
	"小3": "小4",
	"小4": "小5",
	"小5": "小6",
	"小6": "中1",
	"中1": "中2",
	"中2": "中3",
	"中3": "高1",
	"高1": "高2",
	"高2": "高3",
}

// JuniorSubjects are the five subjects auto-assigned to elementary and
// junior-high students.
var JuniorSubjects = []string{"国語", "数学", "英語", "理科", "社会"}

// HighRegularSubjects is the catalog of high-school periodic-exam subjects.
var HighRegularSubjects = []string{
	"現代文", "言語文化",
	"数学ⅠA", "数学ⅡB", "数学ⅢC",
	"現代社会", "公共", "倫理", "政治・経済", "地理", "日本史", "世界史",
	"物理", "物理基礎", "化学", "化学基礎", "生物", "生物基礎", "地学", "地学基礎",
	"コミュ英", "論理表現",
}

// HighMockSubjects is the catalog of standardized mock-exam subjects.
var HighMockSubjects = []string{
	"現代文", "古文", "漢文",
	"地理総合、地理探究", "歴史総合、日本史探究", "歴史総合、世界史探究",
	"公共、倫理", "公共、政治・経済",
	"数学ⅠA", "数学ⅡBC",
	"物理", "化学", "生物", "地学",
	"物理基礎", "化学基礎", "生物基礎", "地学基礎",
	"英語R", "英語L", "情報Ⅰ",
}

// Domain errors
var (
	ErrEmptyName    = errors.New("student name cannot be empty")
	ErrNameTooLong  = errors.New("student name cannot exceed 100 characters")
	ErrInvalidGrade = errors.New("grade is not in the grade ladder")
)

// Student holds state for a registered student.
// ID and CreatedAt are set at registration and never change afterwards.
type Student struct {
	ID            string
	Name          string
	Grade         string
	SchoolName    string
	TargetSchool  string
	AdmissionGoal string
	LoginID       string
	Subjects      []string
	MockSubjects  []string
	CreatedAt     time.Time
}

// Validate checks if the Student has valid data.
// PRE: Student struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Student) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if len(s.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !ValidGrade(s.Grade) {
		return ErrInvalidGrade
	}
	return nil
}

// IsHighSchool returns true for high-school and post-graduation grades.
// INVARIANT: Grade field is not mutated
func (s *Student) IsHighSchool() bool {
	return strings.HasPrefix(s.Grade, "高") || s.Grade == "既卒"
}

// ValidGrade reports whether grade is part of the grade ladder.
func ValidGrade(grade string) bool {
	for _, g := range Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// PromoteGrade returns the successor of grade on the promotion ladder.
// Grades outside the ladder are returned unchanged.
func PromoteGrade(grade string) string {
	if next, ok := promotions[grade]; ok {
		return next
	}
	return grade
}

// ResolveSubjects decides the subject lists for a student at registration.
// Elementary and junior-high students always get the fixed five subjects and
// no mock subjects; high-school and 既卒 students keep the lists they chose.
func ResolveSubjects(grade string, chosen, chosenMock []string) (subjects, mockSubjects []string) {
	if strings.HasPrefix(grade, "高") || grade == "既卒" {
		return chosen, chosenMock
	}
	return append([]string(nil), JuniorSubjects...), nil
}
