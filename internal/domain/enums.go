package domain

// ActivityAction is the closed set of actions recorded in the activity log.
type ActivityAction string

const (
	ActionCreate  ActivityAction = "CREATE"
	ActionUpdate  ActivityAction = "UPDATE"
	ActionDelete  ActivityAction = "DELETE"
	ActionView    ActivityAction = "VIEW"
	ActionComment ActivityAction = "COMMENT"
	ActionAssign  ActivityAction = "ASSIGN"
)

func (a ActivityAction) String() string { return string(a) }

func (a ActivityAction) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionView, ActionComment, ActionAssign:
		return true
	}
	return false
}
