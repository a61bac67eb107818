package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"    // local directory id (int64)
	KeySubjectID CtxKey = "SubjectID" // identity provider subject
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	KeyFirstName CtxKey = "FirstName"
	KeyLastName  CtxKey = "LastName"
	KeyUser      CtxKey = "User" // resolved *User directory record, absent until profile completion
)
