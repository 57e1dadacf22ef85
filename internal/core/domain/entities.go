package domain

// UserRole is the role of an account.
type UserRole string

const (
	// RoleUser is a regular account.
	RoleUser UserRole = "user"
	// RoleAdmin is an administrator account.
	RoleAdmin UserRole = "admin"
)

// CodeGenType selects how the backend generates an app.
type CodeGenType string

const (
	// CodeGenHTML generates a single HTML file.
	CodeGenHTML CodeGenType = "html"
	// CodeGenMultiFile generates separate HTML, CSS and JS files.
	CodeGenMultiFile CodeGenType = "multi_file"
	// CodeGenVueProject generates a Vue project.
	CodeGenVueProject CodeGenType = "vue_project"
)

// Valid reports whether t is a known generation type. The empty type lets the server choose.
func (t CodeGenType) Valid() bool {
	switch t {
	case "", CodeGenHTML, CodeGenMultiFile, CodeGenVueProject:
		return true
	default:
		return false
	}
}

// User is an account as embedded in app views.
type User struct {
	ID          int64    `json:"id"`
	UserAccount string   `json:"userAccount"`
	UserName    string   `json:"userName,omitempty"`
	UserAvatar  string   `json:"userAvatar,omitempty"`
	UserProfile string   `json:"userProfile,omitempty"`
	UserRole    UserRole `json:"userRole"`
	CreateTime  string   `json:"createTime,omitempty"`
}

// LoginUser is the view of the logged-in account.
type LoginUser struct {
	ID          int64    `json:"id"`
	UserAccount string   `json:"userAccount"`
	UserName    string   `json:"userName,omitempty"`
	UserAvatar  string   `json:"userAvatar,omitempty"`
	UserProfile string   `json:"userProfile,omitempty"`
	UserRole    UserRole `json:"userRole"`
}

// DisplayName returns the user name, falling back to the account.
func (u LoginUser) DisplayName() string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.UserAccount
}

// App is the view of a generated application.
type App struct {
	ID           int64       `json:"id"`
	AppName      string      `json:"appName,omitempty"`
	Cover        string      `json:"cover,omitempty"`
	InitPrompt   string      `json:"initPrompt,omitempty"`
	CodeGenType  CodeGenType `json:"codeGenType,omitempty"`
	DeployKey    string      `json:"deployKey,omitempty"`
	DeployedTime string      `json:"deployedTime,omitempty"`
	Priority     int         `json:"priority"`
	UserID       int64       `json:"userId"`
	CreateTime   string      `json:"createTime,omitempty"`
	UpdateTime   string      `json:"updateTime,omitempty"`
	User         *User       `json:"user,omitempty"`
}

// Deployed reports whether the app has been deployed.
func (a App) Deployed() bool {
	return a.DeployKey != ""
}

// Page is a paginated list response.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Size    int64 `json:"size"`
	Current int64 `json:"current"`
	Pages   int64 `json:"pages"`
}

// SortOrder is the direction of a sorted page request.
type SortOrder string

const (
	// SortAscend sorts ascending.
	SortAscend SortOrder = "ascend"
	// SortDescend sorts descending.
	SortDescend SortOrder = "descend"
)

// PageRequest carries pagination parameters.
type PageRequest struct {
	Current   int       `json:"current,omitempty"`
	PageSize  int       `json:"pageSize,omitempty"`
	SortField string    `json:"sortField,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`
}

// AppQuery filters app list requests.
type AppQuery struct {
	PageRequest
	ID          int64       `json:"id,omitempty"`
	AppName     string      `json:"appName,omitempty"`
	UserID      int64       `json:"userId,omitempty"`
	CodeGenType CodeGenType `json:"codeGenType,omitempty"`
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	UserAccount  string `json:"userAccount"`
	UserPassword string `json:"userPassword"`
}

// RegisterRequest is the body of a register call.
type RegisterRequest struct {
	UserAccount   string `json:"userAccount"`
	UserPassword  string `json:"userPassword"`
	CheckPassword string `json:"checkPassword"`
}

// AppAddRequest is the body of an app creation call.
type AppAddRequest struct {
	AppName     string      `json:"appName,omitempty"`
	InitPrompt  string      `json:"initPrompt,omitempty"`
	CodeGenType CodeGenType `json:"codeGenType,omitempty"`
}

// AppUpdateRequest is the body of an app update call.
type AppUpdateRequest struct {
	ID          int64       `json:"id"`
	AppName     string      `json:"appName,omitempty"`
	Cover       string      `json:"cover,omitempty"`
	InitPrompt  string      `json:"initPrompt,omitempty"`
	CodeGenType CodeGenType `json:"codeGenType,omitempty"`
}

// IDRequest is the body of calls that address an entity by id.
type IDRequest struct {
	ID int64 `json:"id"`
}
