package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/hotel-booking/api/middleware"
	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/cache"
	"github.com/irsalhamdi/hotel-booking/config"
	"github.com/irsalhamdi/hotel-booking/core/auth"
	"github.com/irsalhamdi/hotel-booking/core/cart"
	"github.com/irsalhamdi/hotel-booking/core/checkout"
	"github.com/irsalhamdi/hotel-booking/core/city"
	"github.com/irsalhamdi/hotel-booking/core/hotel"
	"github.com/irsalhamdi/hotel-booking/core/payment"
	"github.com/irsalhamdi/hotel-booking/core/reservation"
	"github.com/irsalhamdi/hotel-booking/core/review"
	"github.com/irsalhamdi/hotel-booking/core/room"
	"github.com/irsalhamdi/hotel-booking/core/user"
	"github.com/irsalhamdi/hotel-booking/rate"
	"github.com/jmoiron/sqlx"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Session    *scs.SessionManager
	Cache      *cache.Cache
	Limiter    *rate.Limiter
	Paypal     *paypal.Client
	Stripe     *stripecl.API
	StripeCfg  config.Stripe
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.Ratelimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	users := user.NewPostgresStore(cfg.DB)
	cities := city.NewPostgresStore(cfg.DB)
	hotels := hotel.NewPostgresStore(cfg.DB)
	rooms := room.NewPostgresStore(cfg.DB)
	reviews := review.NewPostgresStore(cfg.DB)
	reservations := reservation.NewPostgresStore(cfg.DB)
	carts := cart.NewPostgresStore(cfg.DB)
	items := cart.NewPostgresItemStore(cfg.DB)
	methods := payment.NewPostgresMethodStore(cfg.DB)
	cards := payment.NewPostgresCreditCardStore(cfg.DB)
	accounts := payment.NewPostgresPaypalStore(cfg.DB)

	cardSvc := payment.NewCreditCardService(cards)
	paypalSvc := payment.NewPaypalService(accounts)
	paymentSvc := payment.NewService(methods, users, cardSvc, paypalSvc)

	engine := reservation.NewEngine(reservations, rooms, users, hotels, cities)
	orch := checkout.NewOrchestrator(carts, items, methods, paymentSvc.Resolver(), engine, cfg.Log)
	cartSvc := cart.NewService(carts, items, rooms, methods, orch)

	authen := auth.Authenticate(cfg.Session)
	admin := auth.Admin(cfg.Session)

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(users, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(users, cfg.Session))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(users), authen)

	a.Handle(http.MethodGet, "/cities", city.HandleList(cities, cfg.Cache, cfg.Log))
	a.Handle(http.MethodGet, "/cities/{id}", city.HandleShow(cities))
	a.Handle(http.MethodPost, "/cities", city.HandleCreate(cities, cfg.Cache, cfg.Log), admin)
	a.Handle(http.MethodPut, "/cities/{id}", city.HandleUpdate(cities, cfg.Cache, cfg.Log), admin)
	a.Handle(http.MethodDelete, "/cities/{id}", city.HandleDelete(cities, cfg.Cache, cfg.Log), admin)

	a.Handle(http.MethodGet, "/cities/{city_id}/hotels", hotel.HandleListByCity(hotels, cfg.Cache, cfg.Log))
	a.Handle(http.MethodGet, "/hotels/{id}", hotel.HandleShow(hotels))
	a.Handle(http.MethodPost, "/hotels", hotel.HandleCreate(hotels, cfg.Cache, cfg.Log), admin)
	a.Handle(http.MethodPut, "/hotels/{id}", hotel.HandleUpdate(hotels, cfg.Cache, cfg.Log), admin)
	a.Handle(http.MethodDelete, "/hotels/{id}", hotel.HandleDelete(hotels, cfg.Cache, cfg.Log), admin)

	a.Handle(http.MethodGet, "/hotels/{hotel_id}/rooms", room.HandleListByHotel(rooms))
	a.Handle(http.MethodGet, "/rooms/{id}", room.HandleShow(rooms))
	a.Handle(http.MethodPost, "/rooms", room.HandleCreate(rooms), admin)
	a.Handle(http.MethodPut, "/rooms/{id}", room.HandleUpdate(rooms), admin)
	a.Handle(http.MethodDelete, "/rooms/{id}", room.HandleDelete(rooms), admin)

	a.Handle(http.MethodGet, "/hotels/{hotel_id}/reviews", review.HandleListByHotel(reviews))
	a.Handle(http.MethodPost, "/hotels/{hotel_id}/reviews", review.HandleCreate(reviews, hotels), authen)
	a.Handle(http.MethodDelete, "/reviews/{id}", review.HandleDelete(reviews), authen)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cartSvc), authen)
	a.Handle(http.MethodGet, "/carts", cart.HandleList(cartSvc), authen)
	a.Handle(http.MethodPut, "/cart/items", cart.HandleCreateItem(cartSvc), authen)
	a.Handle(http.MethodDelete, "/cart/items/{id}", cart.HandleDeleteItem(cartSvc), authen)
	a.Handle(http.MethodPost, "/cart/confirm", cart.HandleConfirm(cartSvc), authen)

	a.Handle(http.MethodGet, "/payment-methods", payment.HandleListOptions(paymentSvc), authen)
	a.Handle(http.MethodPost, "/payment-methods", payment.HandleCreate(paymentSvc), authen)
	a.Handle(http.MethodDelete, "/payment-methods/{id}", payment.HandleDelete(paymentSvc), authen)

	a.Handle(http.MethodGet, "/reservations", reservation.HandleList(engine), authen)
	a.Handle(http.MethodGet, "/admin/reservations", reservation.HandleListAll(engine), admin)
	a.Handle(http.MethodGet, "/reservations/{id}", reservation.HandleShow(engine), authen)
	a.Handle(http.MethodPost, "/reservations", reservation.HandleCreate(engine), authen)
	a.Handle(http.MethodPut, "/reservations/{id}", reservation.HandleUpdate(engine), authen)
	a.Handle(http.MethodDelete, "/reservations/{id}", reservation.HandleDelete(engine), authen)

	a.Handle(http.MethodPost, "/checkout/paypal", checkout.HandlePaypalCheckout(cartSvc, rooms, cfg.Paypal), authen)
	a.Handle(http.MethodPost, "/checkout/paypal/{id}/capture", checkout.HandlePaypalCapture(cartSvc, cfg.Paypal), authen)
	a.Handle(http.MethodPost, "/checkout/stripe", checkout.HandleStripeCheckout(cartSvc, rooms, cfg.Stripe, cfg.StripeCfg), authen)
	a.Handle(http.MethodPost, "/checkout/stripe/capture", checkout.HandleStripeCapture(cartSvc, cfg.StripeCfg))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	handler = web.WrapMiddleware(mw, handler)
	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {
			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
