package skill

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryTech       Category = "tech"
	CategoryProduct    Category = "product"
	CategoryBusiness   Category = "business"
	CategoryMarketing  Category = "marketing"
	CategoryDesign     Category = "design"
	CategoryOperations Category = "operations"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTech, CategoryProduct, CategoryBusiness, CategoryMarketing, CategoryDesign, CategoryOperations:
		return true
	default:
		return false
	}
}

type Skill struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	Category  Category
	CreatedAt time.Time
}

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

type Priority string

const (
	PriorityMustHave   Priority = "must-have"
	PriorityNiceToHave Priority = "nice-to-have"
)

// Qualifier is either Owned or Wanted.
type Qualifier interface {
	qualifier()
}

type Owned struct {
	Level Level
}

type Wanted struct {
	Priority Priority
}

func (Owned) qualifier()  {}
func (Wanted) qualifier() {}

// UserSkill associates a profile with a catalog skill. The Qualifier decides
// whether the skill is declared as owned or wanted.
type UserSkill struct {
	UserID    uuid.UUID
	Skill     Skill
	Qualifier Qualifier
}

const (
	KindOwned  = "owned"
	KindWanted = "wanted"
)

// Kind returns the storage discriminator for the qualifier.
func (us UserSkill) Kind() string {
	switch us.Qualifier.(type) {
	case Owned:
		return KindOwned
	case Wanted:
		return KindWanted
	default:
		return ""
	}
}

// Split partitions a mixed list into owned and wanted skills, dropping entries
// without a qualifier.
func Split(items []UserSkill) (owned []UserSkill, wanted []UserSkill) {
	owned = make([]UserSkill, 0, len(items))
	wanted = make([]UserSkill, 0, len(items))
	for _, it := range items {
		switch it.Qualifier.(type) {
		case Owned:
			owned = append(owned, it)
		case Wanted:
			wanted = append(wanted, it)
		}
	}
	return owned, wanted
}
