package client

import "errors"

// Message turns a failed op into the text shown to the user.
func Message(op string, err error) string {
	if err == nil {
		return ""
	}
	srv := ServerMessage(err)

	switch op {
	case OpLogin:
		if errors.Is(err, ErrNetwork) {
			return "Something went wrong during login. Please check your connection."
		}
		if srv != "" {
			return srv
		}
		return "Login failed. Please try again."

	case OpRegister:
		if errors.Is(err, ErrNetwork) {
			return "Something went wrong during registration. Please check your connection."
		}
		if srv != "" {
			return srv
		}
		return "Registration failed. Please try again."

	case OpList:
		switch {
		case errors.Is(err, ErrNotFound):
			return "Electronics endpoint not found."
		case errors.Is(err, ErrServer) && StatusCode(err) >= 500:
			return "Server error. Please try again later."
		case errors.Is(err, ErrNetwork):
			return "Network error. Please check your connection."
		}
		return "Failed to load electronics. Please try again."

	case OpDelete:
		switch {
		case errors.Is(err, ErrNotFound):
			return "Component not found."
		case errors.Is(err, ErrServer) && StatusCode(err) >= 500:
			return "Server error. Please try again later."
		case errors.Is(err, ErrNetwork):
			return "Network error. Please check your connection."
		}
		return "Failed to delete component. Please try again."

	case OpCreate, OpUpdate:
		switch {
		case errors.Is(err, ErrValidation):
			if srv != "" {
				return srv
			}
			return "Invalid data provided"
		case errors.Is(err, ErrNotFound):
			return "Component not found"
		case errors.Is(err, ErrServer) && StatusCode(err) >= 500:
			return "Server error. Please try again later."
		case errors.Is(err, ErrNetwork):
			return "Network error. Please check your connection."
		}
		if op == OpCreate {
			return "Failed to add component. Please try again."
		}
		return "Failed to update component. Please try again."
	}

	return err.Error()
}
