package api

import "net/http"

func (a *API) getStatus(w http.ResponseWriter, r *http.Request) {
	probe := func(check Healthcheck) bool {
		if check == nil {
			return false
		}
		return check(r.Context()) == nil
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"redis": probe(a.redis),
		"db":    probe(a.db),
	})
}

func (a *API) getStats(w http.ResponseWriter, r *http.Request) {
	count := func(c Counter) (int64, error) {
		if c == nil {
			return 0, nil
		}
		return c.Count(r.Context())
	}

	users, err := count(a.users)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	stored, err := count(a.store)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"users": users,
		"files": stored,
	})
}
