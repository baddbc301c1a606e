package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const protobufContentType = "application/x-protobuf"

var errEndpointPair = errors.New("path endpoints need both x and y")

// Controller handles HTTP requests on mazes.
type Controller struct {
	mazeService i.MazeService
}

// NewController creates a new maze Controller.
func NewController(s i.MazeService) *Controller {
	return &Controller{
		mazeService: s,
	}
}

// RegisterPublic registers the read-only routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/recent", c.recent)
		mazes.GET("/:ID", c.byID)
		mazes.GET("/:ID/path", c.path)
		mazes.GET("/:ID/binary", c.binary)
	}
}

// RegisterProtected registers the routes that create mazes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", c.generate)
		mazes.POST("/import", c.importMaze)
	}
}

func (c *Controller) generate(ctx *gin.Context) {
	owner, err := identity.UserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := c.mazeService.Generate(ctx.Request.Context(), owner, i.GenerateRequest{
		Width:    request.Width,
		Height:   request.Height,
		CellSize: request.CellSize,
		Seed:     request.Seed,
		Ratio:    request.Ratio,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(record))
}

func (c *Controller) importMaze(ctx *gin.Context) {
	owner, err := identity.UserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var request ImportRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := c.mazeService.Import(ctx.Request.Context(), owner, request.Walls, request.CellSize)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(record))
}

func (c *Controller) byID(ctx *gin.Context) {
	id, ok := mazeID(ctx)
	if !ok {
		return
	}

	record, err := c.mazeService.ByID(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(record))
}

func (c *Controller) path(ctx *gin.Context) {
	id, ok := mazeID(ctx)
	if !ok {
		return
	}

	var query PathQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, err := endpoint(query.FromX, query.FromY)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := endpoint(query.ToX, query.ToY)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := c.mazeService.Solve(ctx.Request.Context(), id, from, to)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &PathResponse{Length: len(path), Path: path})
}

func (c *Controller) binary(ctx *gin.Context) {
	id, ok := mazeID(ctx)
	if !ok {
		return
	}

	payload, err := c.mazeService.Binary(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, protobufContentType, payload)
}

func (c *Controller) recent(ctx *gin.Context) {
	records, err := c.mazeService.Recent(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response := &RecentResponse{Mazes: make([]MazeSummary, 0, len(records))}
	for _, record := range records {
		response.Mazes = append(response.Mazes, newMazeSummary(record))
	}
	ctx.JSON(http.StatusOK, response)
}

func mazeID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze ID"})
		return uuid.Nil, false
	}
	return id, true
}

func endpoint(x, y *int) (*maze.CellPosition, error) {
	if x == nil && y == nil {
		return nil, nil
	}
	if x == nil || y == nil {
		return nil, errEndpointPair
	}
	return &maze.CellPosition{X: *x, Y: *y}, nil
}

// abortWithError maps service and maze errors to HTTP statuses. Anything
// unknown is reported without details.
func abortWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrNotPerfect), errors.Is(err, maze.ErrNoPathFound):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrInvalidRatio),
		errors.Is(err, maze.ErrMalformedEncoding),
		errors.Is(err, service.ErrMazeTooLarge),
		errors.Is(err, service.ErrInvalidCellSize),
		errors.Is(err, service.ErrInvalidEndpoints):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
