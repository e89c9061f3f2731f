package handlers

import (
	"github.com/gorilla/mux"
)

// NewRouter собирает таблицу маршрутов, auth-группа на /api/v1, блоги на /api/v2
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", HomeHandler).Methods("GET")
	r.HandleFunc("/health", h.HealthHandler).Methods("GET")

	auth := r.PathPrefix("/api/v1").Subrouter()
	auth.HandleFunc("/login", h.Login).Methods("POST")
	auth.HandleFunc("/register", h.Register).Methods("POST")
	auth.HandleFunc("/updateprofile/{userId}", h.RequireAuth(h.UpdateProfile)).Methods("PUT")
	auth.HandleFunc("/logout", h.Logout).Methods("POST")
	auth.HandleFunc("/user", h.RequireAuth(h.GetCurrentUser)).Methods("GET")

	blog := r.PathPrefix("/api/v2").Subrouter()
	blog.HandleFunc("/allusersblogs", h.GetAllUsersBlogs).Methods("GET")
	blog.HandleFunc("/user/{userId}/blogs", h.RequireAuth(h.GetUserBlogs)).Methods("GET")
	blog.HandleFunc("/createblog", h.RequireAuth(h.CreateBlog)).Methods("POST")
	blog.HandleFunc("/blog/{blogId}", h.GetBlog).Methods("GET")
	blog.HandleFunc("/blog/{blogId}", h.RequireAuth(h.UpdateBlog)).Methods("PUT")
	blog.HandleFunc("/blog/{blogId}", h.RequireAuth(h.DeleteBlog)).Methods("DELETE")
	blog.HandleFunc("/bloglike/{blogId}", h.RequireAuth(h.LikeBlog)).Methods("PUT")

	return r
}
