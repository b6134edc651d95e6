package board

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// whereContains filters column by a case-insensitive substring. Both sides
// are folded by the database so stored values and the filter agree.
func whereContains(db *gorm.DB, column, s string) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Where(column+` ILIKE ? ESCAPE '\'`, containsPattern(s))
	}
	return db.Where("LOWER("+column+`) LIKE LOWER(?) ESCAPE '\'`, containsPattern(s))
}

func cardsByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
