package controller

import (
	"ctchen222/blog-api/internal/api/models"
	"ctchen222/blog-api/internal/api/response"
	"ctchen222/blog-api/internal/api/service"
	"ctchen222/blog-api/internal/validator"
	"ctchen222/blog-api/pkg/proto"

	"github.com/gin-gonic/gin"
)

// PostController handles the /posts endpoints. All of them require a session token.
type PostController struct {
	postService service.PostService
	contract    *Contract
}

// NewPostController creates a new PostController.
func NewPostController(postService service.PostService, contract *Contract) *PostController {
	return &PostController{
		postService: postService,
		contract:    contract,
	}
}

// List handles GET /posts.
func (pc *PostController) List(c *gin.Context) {
	response.Write(c, pc.list(c))
}

func (pc *PostController) list(c *gin.Context) response.ListPostsResponse {
	ctx := c.Request.Context()

	raw, err := pc.contract.authorization(c)
	if err != nil {
		return response.ListPostsFromError(err)
	}
	if _, err := pc.contract.identify(raw); err != nil {
		return response.ListPostsFromError(err)
	}

	posts, err := pc.postService.List(ctx)
	if err != nil {
		return response.ListPostsFromError(classify(ctx, err))
	}
	return response.PostList{Posts: proto.NewPosts(posts)}
}

// Create handles POST /posts.
func (pc *PostController) Create(c *gin.Context) {
	response.Write(c, pc.create(c))
}

func (pc *PostController) create(c *gin.Context) response.CreatePostResponse {
	ctx := c.Request.Context()

	raw, err := pc.contract.authorization(c)
	if err != nil {
		return response.CreatePostFromError(err)
	}
	var req proto.PostRequest
	if err := pc.contract.bindJSON(c, &req); err != nil {
		return response.CreatePostFromError(err)
	}
	if err := pc.contract.validate(ctx, func() error { return validator.Struct(req) }); err != nil {
		return response.CreatePostFromError(err)
	}

	actor, err := pc.contract.identify(raw)
	if err != nil {
		return response.CreatePostFromError(err)
	}

	post, err := pc.postService.Create(ctx, actor, &req)
	if err != nil {
		return response.CreatePostFromError(classify(ctx, err))
	}
	return response.PostCreated{Post: proto.NewPost(post)}
}

// Get handles GET /posts/:postId. Any authenticated user may read any post.
func (pc *PostController) Get(c *gin.Context) {
	response.Write(c, pc.get(c))
}

func (pc *PostController) get(c *gin.Context) response.GetPostResponse {
	ctx := c.Request.Context()

	raw, err := pc.contract.authorization(c)
	if err != nil {
		return response.GetPostFromError(err)
	}
	rawID := c.Param("postId")

	var id models.PostID
	if err := pc.contract.validate(ctx, func() (err error) {
		id, err = postID(rawID)
		return err
	}); err != nil {
		return response.GetPostFromError(err)
	}

	if _, err := pc.contract.identify(raw); err != nil {
		return response.GetPostFromError(err)
	}

	post, err := pc.postService.Get(ctx, id)
	if err != nil {
		return response.GetPostFromError(classify(ctx, err))
	}
	return response.PostFound{Post: proto.NewPost(post)}
}

// Update handles PUT /posts/:postId. Only the owner may update.
func (pc *PostController) Update(c *gin.Context) {
	response.Write(c, pc.update(c))
}

func (pc *PostController) update(c *gin.Context) response.UpdatePostResponse {
	ctx := c.Request.Context()

	raw, err := pc.contract.authorization(c)
	if err != nil {
		return response.UpdatePostFromError(err)
	}
	rawID := c.Param("postId")
	var req proto.PostRequest
	if err := pc.contract.bindJSON(c, &req); err != nil {
		return response.UpdatePostFromError(err)
	}

	var id models.PostID
	if err := pc.contract.validate(ctx, func() error {
		var errs validator.Errors
		var pathErr error
		if id, pathErr = postID(rawID); pathErr != nil {
			if fields, ok := pathErr.(validator.Errors); ok {
				errs = append(errs, fields...)
			} else {
				return pathErr
			}
		}
		if bodyErr := validator.Struct(req); bodyErr != nil {
			if fields, ok := bodyErr.(validator.Errors); ok {
				errs = append(errs, fields...)
			} else {
				return bodyErr
			}
		}
		if len(errs) > 0 {
			return errs
		}
		return nil
	}); err != nil {
		return response.UpdatePostFromError(err)
	}

	actor, err := pc.contract.identify(raw)
	if err != nil {
		return response.UpdatePostFromError(err)
	}

	post, err := pc.postService.Update(ctx, actor, id, &req)
	if err != nil {
		return response.UpdatePostFromError(classify(ctx, err))
	}
	return response.PostUpdated{Post: proto.NewPost(post)}
}

// Delete handles DELETE /posts/:postId. Only the owner may delete.
func (pc *PostController) Delete(c *gin.Context) {
	response.Write(c, pc.delete(c))
}

func (pc *PostController) delete(c *gin.Context) response.DeletePostResponse {
	ctx := c.Request.Context()

	raw, err := pc.contract.authorization(c)
	if err != nil {
		return response.DeletePostFromError(err)
	}
	rawID := c.Param("postId")

	var id models.PostID
	if err := pc.contract.validate(ctx, func() (err error) {
		id, err = postID(rawID)
		return err
	}); err != nil {
		return response.DeletePostFromError(err)
	}

	actor, err := pc.contract.identify(raw)
	if err != nil {
		return response.DeletePostFromError(err)
	}

	if err := pc.postService.Delete(ctx, actor, id); err != nil {
		return response.DeletePostFromError(classify(ctx, err))
	}
	return response.PostDeleted{}
}
