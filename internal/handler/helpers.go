package handler

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Mensajes al usuario en los dos idiomas que tenía la UI original. El query
// param lang reemplaza las variantes duplicadas de la app vieja: una sola
// capa de presentación con la localización como opción.
var messages = map[string]map[string]string{
	"book_fallback": {
		"en": "Sorry, book not found. Instead, below are some recommended popular books.",
		"es": "Lo sentimos, no encontramos ese libro. A cambio, estos son algunos libros populares recomendados.",
	},
	"author_not_found": {
		"en": "Sorry, no author found by that name. Please try again.",
		"es": "Lo sentimos, no encontramos ningún autor con ese nombre. Intenta de nuevo.",
	},
	"user_not_found": {
		"en": "Sorry, no user found by that id. Please try again.",
		"es": "Lo sentimos, no encontramos ningún usuario con ese id. Intenta de nuevo.",
	},
	"book_not_found": {
		"en": "Sorry, book not found.",
		"es": "Lo sentimos, no encontramos ese libro.",
	},
}

func langFrom(r *http.Request) string {
	if r.URL.Query().Get("lang") == "es" {
		return "es"
	}
	return "en"
}

func msg(key, lang string) string {
	if s, ok := messages[key][lang]; ok {
		return s
	}
	return messages[key]["en"]
}
