package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/pkg/auth"
	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/handler"
	service_mocks "github.com/Astemirdum/shareit/server/internal/handler/mocks"
	"github.com/Astemirdum/shareit/server/internal/model"
)

var (
	start = time.Date(2030, 12, 25, 12, 0, 0, 0, time.UTC)
	end   = time.Date(2030, 12, 26, 12, 0, 0, 0, time.UTC)
)

func testBooking(status model.Status) model.Booking {
	return model.Booking{
		ID:     5,
		Start:  datetime.New(start),
		End:    datetime.New(end),
		Status: status,
		Item:   model.Item{ID: 10, Name: "drill", Description: "cordless", Available: true, OwnerID: 1},
		Booker: model.User{ID: 2, Name: "booker", Email: "booker@mail.com"},
	}
}

const bookingJSON = `{"id":5,"start":"2030-12-25T12:00:00","end":"2030-12-26T12:00:00","status":"%s",` +
	`"item":{"id":10,"name":"drill","description":"cordless","available":true,"requestId":null},` +
	`"booker":{"id":2,"name":"booker","email":"booker@mail.com"}}`

func bookingBody(status string) string {
	return strings.Replace(bookingJSON, "%s", status, 1)
}

type mocks struct {
	bookings *service_mocks.MockBookingService
	users    *service_mocks.MockUserService
	items    *service_mocks.MockItemService
	requests *service_mocks.MockRequestService
}

func newRouter(t *testing.T) (*echo.Echo, mocks) {
	t.Helper()
	c := gomock.NewController(t)
	m := mocks{
		bookings: service_mocks.NewMockBookingService(c),
		users:    service_mocks.NewMockUserService(c),
		items:    service_mocks.NewMockItemService(c),
		requests: service_mocks.NewMockRequestService(c),
	}
	h := handler.New(handler.Services{
		Bookings: m.bookings,
		Users:    m.users,
		Items:    m.items,
		Requests: m.requests,
	}, zap.NewExample().Named("test"))
	return h.NewRouter(), m
}

func TestHandler_Bookings(t *testing.T) {
	t.Parallel()
	type input struct {
		method string
		target string
		userID string
		body   string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m mocks)

	var tests = []struct {
		name         string
		input        input
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "create ok",
			input: input{
				method: http.MethodPost,
				target: "/bookings",
				userID: "2",
				body:   `{"itemId":10,"start":"2030-12-25T12:00:00","end":"2030-12-26T12:00:00"}`,
			},
			mockBehavior: func(m mocks) {
				s, e := datetime.New(start), datetime.New(end)
				m.bookings.EXPECT().
					CreateBooking(gomock.Any(), model.CreateBookingRequest{ItemID: 10, Start: &s, End: &e}, int64(2)).
					Return(testBooking(model.StatusWaiting), nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: bookingBody("WAITING"),
			},
		},
		{
			name: "create without header",
			input: input{
				method: http.MethodPost,
				target: "/bookings",
				body:   `{"itemId":10,"start":"2030-12-25T12:00:00","end":"2030-12-26T12:00:00"}`,
			},
			mockBehavior: func(m mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Required request header 'X-Sharer-User-Id' is not present"}`,
			},
		},
		{
			name: "create unavailable item",
			input: input{
				method: http.MethodPost,
				target: "/bookings",
				userID: "2",
				body:   `{"itemId":10,"start":"2030-12-25T12:00:00","end":"2030-12-26T12:00:00"}`,
			},
			mockBehavior: func(m mocks) {
				m.bookings.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any(), int64(2)).
					Return(model.Booking{}, errs.New(errs.ErrNotAvailable, "item with id = 10 is not available for booking"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"item with id = 10 is not available for booking"}`,
			},
		},
		{
			name: "approve ok",
			input: input{
				method: http.MethodPatch,
				target: "/bookings/5?approved=true",
				userID: "1",
			},
			mockBehavior: func(m mocks) {
				m.bookings.EXPECT().
					UpdateBookingStatus(gomock.Any(), int64(5), true, int64(1)).
					Return(testBooking(model.StatusApproved), nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: bookingBody("APPROVED"),
			},
		},
		{
			name: "approve by non owner",
			input: input{
				method: http.MethodPatch,
				target: "/bookings/5?approved=false",
				userID: "2",
			},
			mockBehavior: func(m mocks) {
				m.bookings.EXPECT().
					UpdateBookingStatus(gomock.Any(), int64(5), false, int64(2)).
					Return(model.Booking{}, errs.New(errs.ErrPermissionDenied, "user with id = 2 is not the owner of item with id = 10"))
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"user with id = 2 is not the owner of item with id = 10"}`,
			},
		},
		{
			name: "approve with bad flag",
			input: input{
				method: http.MethodPatch,
				target: "/bookings/5?approved=maybe",
				userID: "1",
			},
			mockBehavior: func(m mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"approved must be true or false"}`,
			},
		},
		{
			name: "get hidden from stranger",
			input: input{
				method: http.MethodGet,
				target: "/bookings/5",
				userID: "3",
			},
			mockBehavior: func(m mocks) {
				m.bookings.EXPECT().
					GetBooking(gomock.Any(), int64(5), int64(3)).
					Return(model.Booking{}, errs.New(errs.ErrNotFound, "booking with id = 5 not found for user with id = 3"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"booking with id = 5 not found for user with id = 3"}`,
			},
		},
		{
			name: "list defaults to ALL",
			input: input{
				method: http.MethodGet,
				target: "/bookings",
				userID: "2",
			},
			mockBehavior: func(m mocks) {
				m.bookings.EXPECT().
					ListBookings(gomock.Any(), int64(2), "ALL").
					Return([]model.Booking{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name: "owner list unknown state",
			input: input{
				method: http.MethodGet,
				target: "/bookings/owner?state=FOO",
				userID: "1",
			},
			mockBehavior: func(m mocks) {
				m.bookings.EXPECT().
					ListOwnerBookings(gomock.Any(), int64(1), "FOO").
					Return(nil, errs.New(errs.ErrValidation, "Unknown state: FOO"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Unknown state: FOO"}`,
			},
		},
		{
			name: "internal",
			input: input{
				method: http.MethodGet,
				target: "/bookings?state=PAST",
				userID: "2",
			},
			mockBehavior: func(m mocks) {
				m.bookings.EXPECT().
					ListBookings(gomock.Any(), int64(2), "PAST").
					Return(nil, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, m := newRouter(t)
			tt.mockBehavior(m)

			var body *strings.Reader
			if tt.input.body != "" {
				body = strings.NewReader(tt.input.body)
			} else {
				body = strings.NewReader("")
			}
			r := httptest.NewRequest(tt.input.method, tt.input.target, body)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.input.userID != "" {
				r.Header.Set(auth.XSharerUserIDHeader, tt.input.userID)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_AddComment_NeverBooked(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)
	m.items.EXPECT().
		AddComment(gomock.Any(), int64(10), model.CommentCreate{Text: "great"}, int64(3)).
		Return(model.Comment{}, errs.New(errs.ErrNeverBooked, "user 3 never booked item 10"))

	r := httptest.NewRequest(http.MethodPost, "/items/10/comment", strings.NewReader(`{"text":"great"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	r.Header.Set(auth.XSharerUserIDHeader, "3")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"user 3 never booked item 10"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_GetItem_OwnerView(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)
	m.items.EXPECT().
		GetItem(gomock.Any(), int64(10), int64(1)).
		Return(model.ItemView{
			Item: model.Item{ID: 10, Name: "drill", Description: "cordless", Available: true, OwnerID: 1},
			NextBooking: &model.BookingSummary{
				ID: 5, BookerID: 2, Start: datetime.New(start), End: datetime.New(end),
			},
			Comments: []model.Comment{},
		}, nil)

	r := httptest.NewRequest(http.MethodGet, "/items/10", http.NoBody)
	r.Header.Set(auth.XSharerUserIDHeader, "1")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"id":10,"name":"drill","description":"cordless","available":true,"requestId":null,`+
			`"lastBooking":null,"nextBooking":{"id":5,"bookerId":2,"start":"2030-12-25T12:00:00","end":"2030-12-26T12:00:00"},"comments":[]}`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_CreateUser_Conflict(t *testing.T) {
	t.Parallel()
	e, m := newRouter(t)
	m.users.EXPECT().
		CreateUser(gomock.Any(), model.UserCreate{Name: "ann", Email: "ann@mail.com"}).
		Return(model.User{}, errs.New(errs.ErrConflict, "user with email ann@mail.com already exists"))

	r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"ann","email":"ann@mail.com"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, `{"message":"user with email ann@mail.com already exists"}`, strings.Trim(w.Body.String(), "\n"))
}
