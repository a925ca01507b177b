package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/sashbid/internal"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
	"github.com/frahmantamala/sashbid/internal/testutil"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/frahmantamala/sashbid/internal/transport/middleware"
	"github.com/frahmantamala/sashbid/internal/user"
	userPostgres "github.com/frahmantamala/sashbid/internal/user/postgres"
	"github.com/frahmantamala/sashbid/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User Handler Integration", func() {
	var (
		router  *chi.Mux
		service *user.Service
		admin   *coreuser.User
		member  *coreuser.User
		actor   internal.Principal
	)

	asActor := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(internal.ContextWithPrincipal(r.Context(), actor)))
		})
	}

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		db, err := testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())

		service = user.NewService(userPostgres.NewUserRepository(db), 4, logger.Discard())
		handler := user.NewHandler(transport.NewBaseHandler(logger.Discard(), false), service)

		ctx := context.Background()
		admin, err = service.Create(ctx, &coreuser.User{Name: "Admin", Email: "admin@example.com", Role: coreuser.RoleAdmin}, "password")
		Expect(err).NotTo(HaveOccurred())
		member, err = service.Create(ctx, &coreuser.User{Name: "Member", Email: "member@example.com"}, "password")
		Expect(err).NotTo(HaveOccurred())

		router = chi.NewRouter()
		router.Use(asActor)
		router.Post("/users/change-password", handler.ChangePassword)
		router.Get("/users/{id}", handler.GetUser)
		router.Put("/users/{id}", handler.UpdateUser)
		router.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(coreuser.RoleAdmin))
			r.Get("/users", handler.ListUsers)
			r.Delete("/users/{id}", handler.DeleteUser)
		})
	})

	It("lists users for admins", func() {
		actor = internal.Principal{ID: admin.ID, Role: coreuser.RoleAdmin}
		w := do(http.MethodGet, "/users", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp user.UsersResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Count).To(Equal(2))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))
	})

	It("returns 403 when a regular user lists users", func() {
		actor = internal.Principal{ID: member.ID, Role: coreuser.RoleUser}
		w := do(http.MethodGet, "/users", "")
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("never serializes the password hash", func() {
		actor = internal.Principal{ID: member.ID, Role: coreuser.RoleUser}
		w := do(http.MethodGet, "/users/"+member.ID, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"email":"member@example.com"`))
		Expect(w.Body.String()).NotTo(ContainSubstring("$2a$"))
	})

	It("returns 404 for an unknown user", func() {
		actor = internal.Principal{ID: member.ID, Role: coreuser.RoleUser}
		w := do(http.MethodGet, "/users/nope", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("updates the caller's own profile", func() {
		actor = internal.Principal{ID: member.ID, Role: coreuser.RoleUser}
		w := do(http.MethodPut, "/users/"+member.ID, `{"company":"Acme Glass"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp user.UserMutationResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.User.Company).To(Equal("Acme Glass"))
		Expect(resp.User.Name).To(Equal("Member"))
	})

	It("rejects malformed JSON with 400", func() {
		actor = internal.Principal{ID: member.ID, Role: coreuser.RoleUser}
		w := do(http.MethodPut, "/users/"+member.ID, `{"name":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("changes the password and rejects a wrong current password", func() {
		actor = internal.Principal{ID: member.ID, Role: coreuser.RoleUser}
		w := do(http.MethodPost, "/users/change-password", `{"currentPassword":"nope","newPassword":"newpass"}`)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))

		w = do(http.MethodPost, "/users/change-password", `{"currentPassword":"password","newPassword":"newpass"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("deletes users as admin", func() {
		actor = internal.Principal{ID: admin.ID, Role: coreuser.RoleAdmin}
		w := do(http.MethodDelete, "/users/"+member.ID, "")
		Expect(w.Code).To(Equal(http.StatusOK))

		_, err := service.GetByID(context.Background(), member.ID)
		Expect(err).To(MatchError(internal.ErrUserNotFound))
	})
})
