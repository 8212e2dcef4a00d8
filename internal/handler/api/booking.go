package api

import (
	"context"
	"net/http"
	"strconv"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingIdentity = errs.New("missing caller identity in context")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Request an item for a period. The booking starts out WAITING.
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int false "Caller id"
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, result.BookingID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	c.Header("Location", "/bookings/"+strconv.FormatInt(result.BookingID, 10))
	h.respond(c, http.StatusCreated, view)
}

// @Summary Approve or reject booking
// @Description The item owner decides on a booking. Repeating the current decision fails.
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int false "Caller id"
// @Param bookingId path int true "Booking ID"
// @Param approved query bool true "true to approve, false to reject"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{bookingId} [patch]
func (h *BookingHandler) Approve(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	var query reqdto.ApproveBookingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid approved parameter", nil)
		return
	}

	if _, err := h.cmds.Approve(c.Request.Context(), userID, bookingID, *query.Approved); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, bookingID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.respond(c, http.StatusOK, view)
}

// @Summary Get booking
// @Description Visible to the booker and the item owner only
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int false "Caller id"
// @Param bookingId path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), userID, bookingID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.respond(c, http.StatusOK, view)
}

// @Summary List own bookings
// @Description Bookings made by the caller, newest first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int false "Caller id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Index of the first row" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	h.list(c, h.q.ListForBooker)
}

// @Summary List bookings of owned items
// @Description Bookings of every item the caller owns, newest first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int false "Caller id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Index of the first row" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/owner [get]
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, h.q.ListForOwner)
}

// @Summary Nearest bookings of an item
// @Description Last finished and next upcoming booking of an item the caller owns
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int false "Caller id"
// @Param itemId path int true "Item ID"
// @Success 200 {object} resdto.NearestBookingsResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{itemId}/bookings/nearest [get]
func (h *BookingHandler) Nearest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	view, err := h.q.NearestForItem(c.Request.Context(), userID, itemID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNearestBookings(view))
}

type listFunc func(ctx context.Context, actorID int64, state string, from, size int) ([]*queries.BookingView, error)

func (h *BookingHandler) list(c *gin.Context, fetch listFunc) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid paging parameters", nil)
		return
	}

	views, err := fetch(c.Request.Context(), userID, query.State, query.From, query.Size)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) respond(c *gin.Context, status int, view *queries.BookingView) {
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}

// callerID is set by the auth middleware; its absence means the route was
// registered without it.
func callerID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return 0, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errs.Newf("non-positive %s: %d", name, id)
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}
