package model

// Canteen identifies the location a user, employee, sale or inventory item
// belongs to. Every scoped query filters on it.
type Canteen string

const (
	Canteen1 Canteen = "canteen 1"
	Canteen2 Canteen = "canteen 2"
	Canteen3 Canteen = "canteen 3"
	Canteen4 Canteen = "canteen 4"
	Canteen5 Canteen = "canteen 5"
)

// Valid reports whether c is one of the five known canteens.
func (c Canteen) Valid() bool {
	switch c {
	case Canteen1, Canteen2, Canteen3, Canteen4, Canteen5:
		return true
	}
	return false
}

// Role is the access level carried in the JWT claims.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleManager:
		return true
	}
	return false
}

// EmployeeCategory is the job role of a canteen employee. The spellings are
// the wire contract shared with the client and are kept as-is.
type EmployeeCategory string

const (
	CategorySupervisor    EmployeeCategory = "supervisor"
	CategoryManager       EmployeeCategory = "Manager"
	CategoryCook          EmployeeCategory = "Cook"
	CategoryAssistantCook EmployeeCategory = "Assistant Cook"
	CategoryKitchenHelper EmployeeCategory = "Kitchen-Helpers"
	CategorySweeper       EmployeeCategory = "Sweepers"
	CategoryUtility       EmployeeCategory = "Utility"
)

func (c EmployeeCategory) Valid() bool {
	switch c {
	case CategorySupervisor, CategoryManager, CategoryCook, CategoryAssistantCook,
		CategoryKitchenHelper, CategorySweeper, CategoryUtility:
		return true
	}
	return false
}

// AttendanceStatus is the daily present/absent state of an employee.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// LeaveType categorizes an absence. LeaveNone is the stored normalization of
// "no leave type": it is what present records carry and the bucket absences
// without a category fall into. It has no annual quota.
type LeaveType string

const (
	LeavePersonal LeaveType = "personal"
	LeaveSick     LeaveType = "sick"
	LeaveCasual   LeaveType = "casual"
	LeaveNone     LeaveType = "none"
)

func (l LeaveType) Valid() bool {
	switch l {
	case LeavePersonal, LeaveSick, LeaveCasual, LeaveNone:
		return true
	}
	return false
}
