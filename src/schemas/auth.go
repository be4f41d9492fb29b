package schemas

type RegisterRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verifyPassword"`
}

func (r RegisterRequest) Validate() error {
	var errs fieldErrors
	if errs.notBlank("firstName", r.FirstName) {
		errs.size("firstName", r.FirstName, 1, 50)
	}
	if errs.notBlank("lastName", r.LastName) {
		errs.size("lastName", r.LastName, 1, 50)
	}
	if errs.notBlank("username", r.Username) {
		errs.size("username", r.Username, 3, 255)
		errs.email("username", r.Username)
	}
	if errs.notBlank("password", r.Password) {
		errs.size("password", r.Password, 8, 255)
	}
	if errs.notBlank("verifyPassword", r.VerifyPassword) {
		errs.size("verifyPassword", r.VerifyPassword, 8, 255)
	}
	if len(errs) == 0 && r.Password != r.VerifyPassword {
		errs.add("verifyPassword", "must match password")
	}
	return errs.err()
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs fieldErrors
	if errs.notBlank("username", r.Username) {
		errs.size("username", r.Username, 1, 255)
	}
	if errs.notBlank("password", r.Password) {
		errs.size("password", r.Password, 1, 255)
	}
	return errs.err()
}

type ChangePasswordRequest struct {
	Code              string `json:"code"`
	Username          string `json:"username"`
	NewPassword       string `json:"newPassword"`
	VerifyNewPassword string `json:"verifyNewPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	var errs fieldErrors
	errs.notBlank("code", r.Code)
	errs.notBlank("username", r.Username)
	if errs.notBlank("newPassword", r.NewPassword) {
		errs.size("newPassword", r.NewPassword, 8, 255)
	}
	if errs.notBlank("verifyNewPassword", r.VerifyNewPassword) {
		errs.size("verifyNewPassword", r.VerifyNewPassword, 8, 255)
	}
	return errs.err()
}
