package response

import (
	"ctchen222/blog-api/internal/validator"
	"ctchen222/blog-api/pkg/proto"
	"net/http"
)

// Variant is one wire-visible outcome of an endpoint.
type Variant interface {
	Status() int
}

// Payload is implemented by the variants that carry a JSON body. Variants
// that do not implement it are always written without a body.
type Payload interface {
	Variant
	Body() any
}

// Each endpoint has a closed set of variants: an endpoint interface can only
// be satisfied by the types in this file that carry its marker method.
type (
	RegisterUserResponse interface {
		Variant
		registerUser()
	}
	AuthenticateResponse interface {
		Variant
		authenticate()
	}
	ListPostsResponse interface {
		Variant
		listPosts()
	}
	CreatePostResponse interface {
		Variant
		createPost()
	}
	GetPostResponse interface {
		Variant
		getPost()
	}
	UpdatePostResponse interface {
		Variant
		updatePost()
	}
	DeletePostResponse interface {
		Variant
		deletePost()
	}
)

// UserCreated: 201 with the created user.
type UserCreated struct{ User proto.User }

func (UserCreated) Status() int  { return http.StatusCreated }
func (v UserCreated) Body() any  { return v.User }
func (UserCreated) registerUser() {}

// TokenIssued: 200 with a session token.
type TokenIssued struct{ Token proto.Token }

func (TokenIssued) Status() int   { return http.StatusOK }
func (v TokenIssued) Body() any   { return v.Token }
func (TokenIssued) authenticate() {}

// InvalidCredentials: empty 400. Unknown email and wrong password look the same.
type InvalidCredentials struct{}

func (InvalidCredentials) Status() int   { return http.StatusBadRequest }
func (InvalidCredentials) authenticate() {}

// PostList: 200 with every post.
type PostList struct{ Posts []proto.Post }

func (PostList) Status() int { return http.StatusOK }
func (v PostList) Body() any {
	if v.Posts == nil {
		return []proto.Post{}
	}
	return v.Posts
}
func (PostList) listPosts() {}

// PostCreated: 201 with the new post.
type PostCreated struct{ Post proto.Post }

func (PostCreated) Status() int { return http.StatusCreated }
func (v PostCreated) Body() any { return v.Post }
func (PostCreated) createPost() {}

// PostFound: 200 with the requested post.
type PostFound struct{ Post proto.Post }

func (PostFound) Status() int { return http.StatusOK }
func (v PostFound) Body() any { return v.Post }
func (PostFound) getPost()    {}

// PostUpdated: 200 with the updated post.
type PostUpdated struct{ Post proto.Post }

func (PostUpdated) Status() int { return http.StatusOK }
func (v PostUpdated) Body() any { return v.Post }
func (PostUpdated) updatePost() {}

// PostDeleted: empty 204.
type PostDeleted struct{}

func (PostDeleted) Status() int { return http.StatusNoContent }
func (PostDeleted) deletePost() {}

// Unauthorized: empty 401 for a bad token and for a non-owner alike.
type Unauthorized struct{}

func (Unauthorized) Status() int { return http.StatusUnauthorized }
func (Unauthorized) listPosts()  {}
func (Unauthorized) createPost() {}
func (Unauthorized) getPost()    {}
func (Unauthorized) updatePost() {}
func (Unauthorized) deletePost() {}

// NotFound: empty 404.
type NotFound struct{}

func (NotFound) Status() int { return http.StatusNotFound }
func (NotFound) getPost()    {}
func (NotFound) updatePost() {}
func (NotFound) deletePost() {}

// ExtractionFailed: 400 with a diagnostic message, produced before any
// authentication or validation.
type ExtractionFailed struct{ Message string }

func (ExtractionFailed) Status() int { return http.StatusBadRequest }
func (v ExtractionFailed) Body() any {
	return NewResponse(false, http.StatusBadRequest, map[string]any{
		"message": v.Message,
	})
}
func (ExtractionFailed) registerUser() {}
func (ExtractionFailed) authenticate() {}
func (ExtractionFailed) listPosts()    {}
func (ExtractionFailed) createPost()   {}
func (ExtractionFailed) getPost()      {}
func (ExtractionFailed) updatePost()   {}
func (ExtractionFailed) deletePost()   {}

// ValidationFailed: 400 with the list of violated fields.
type ValidationFailed struct{ Errors validator.Errors }

func (ValidationFailed) Status() int { return http.StatusBadRequest }
func (v ValidationFailed) Body() any {
	return NewResponse(false, http.StatusBadRequest, map[string]any{
		"message": "validation failed",
		"errors":  v.Errors,
	})
}
func (ValidationFailed) registerUser() {}
func (ValidationFailed) authenticate() {}
func (ValidationFailed) listPosts()    {}
func (ValidationFailed) createPost()   {}
func (ValidationFailed) getPost()      {}
func (ValidationFailed) updatePost()   {}
func (ValidationFailed) deletePost()   {}

// InternalError: empty 500. The cause is logged, never sent.
type InternalError struct{}

func (InternalError) Status() int   { return http.StatusInternalServerError }
func (InternalError) registerUser() {}
func (InternalError) authenticate() {}
func (InternalError) listPosts()    {}
func (InternalError) createPost()   {}
func (InternalError) getPost()      {}
func (InternalError) updatePost()   {}
func (InternalError) deletePost()   {}

// rejection maps the contract-level kinds shared by every endpoint.
func rejection(e *Error) (Variant, bool) {
	switch e.Kind {
	case KindExtraction:
		return ExtractionFailed{Message: e.Message}, true
	case KindValidation:
		return ValidationFailed{Errors: e.Fields}, true
	case KindInternal:
		return InternalError{}, true
	}
	return nil, false
}

// The *FromError functions pick the variant of an endpoint for a failure.
// Kinds an endpoint cannot produce collapse into InternalError.

func RegisterUserFromError(err error) RegisterUserResponse {
	if v, ok := rejection(AsError(err)); ok {
		return v.(RegisterUserResponse)
	}
	return InternalError{}
}

func AuthenticateFromError(err error) AuthenticateResponse {
	e := AsError(err)
	if e.Kind == KindAuthentication {
		return InvalidCredentials{}
	}
	if v, ok := rejection(e); ok {
		return v.(AuthenticateResponse)
	}
	return InternalError{}
}

func ListPostsFromError(err error) ListPostsResponse {
	e := AsError(err)
	if e.Kind == KindAuthentication {
		return Unauthorized{}
	}
	if v, ok := rejection(e); ok {
		return v.(ListPostsResponse)
	}
	return InternalError{}
}

func CreatePostFromError(err error) CreatePostResponse {
	e := AsError(err)
	if e.Kind == KindAuthentication {
		return Unauthorized{}
	}
	if v, ok := rejection(e); ok {
		return v.(CreatePostResponse)
	}
	return InternalError{}
}

func GetPostFromError(err error) GetPostResponse {
	e := AsError(err)
	switch e.Kind {
	case KindAuthentication:
		return Unauthorized{}
	case KindNotFound:
		return NotFound{}
	}
	if v, ok := rejection(e); ok {
		return v.(GetPostResponse)
	}
	return InternalError{}
}

func UpdatePostFromError(err error) UpdatePostResponse {
	e := AsError(err)
	switch e.Kind {
	case KindAuthentication, KindAuthorization:
		return Unauthorized{}
	case KindNotFound:
		return NotFound{}
	}
	if v, ok := rejection(e); ok {
		return v.(UpdatePostResponse)
	}
	return InternalError{}
}

func DeletePostFromError(err error) DeletePostResponse {
	e := AsError(err)
	switch e.Kind {
	case KindAuthentication, KindAuthorization:
		return Unauthorized{}
	case KindNotFound:
		return NotFound{}
	}
	if v, ok := rejection(e); ok {
		return v.(DeletePostResponse)
	}
	return InternalError{}
}
