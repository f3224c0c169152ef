// internal/language/catalog.go

// Package language holds the UI string catalogs and the selected-language
// preference. Lookups never fail: a key missing from the active catalog
// falls back to the English catalog, then to the key itself, so an
// incomplete translation degrades to readable English rather than blanks.
package language

import (
	"context"
	"sync"

	apierrors "workersglobe/internal/common/errors"
	"workersglobe/internal/common/logger"
	"workersglobe/internal/storage"
)

const (
	English = "en"
	Hindi   = "hi"

	defaultLanguage = English
)

// Language describes one selectable language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

var supported = []Language{
	{Code: English, Name: "English", NativeName: "English"},
	{Code: Hindi, Name: "Hindi", NativeName: "हिन्दी"},
}

var catalogs = map[string]map[string]string{
	English: {
		"app.name":    "Workers Globe",
		"app.tagline": "Find work. Find workers.",

		"nav.home":          "Home",
		"nav.jobs":          "Jobs",
		"nav.applications":  "Applications",
		"nav.notifications": "Notifications",
		"nav.profile":       "Profile",
		"nav.login":         "Login",
		"nav.logout":        "Logout",
		"nav.register":      "Register",

		"auth.email":            "Email",
		"auth.otp":              "One-time password",
		"auth.sendOtp":          "Send OTP",
		"auth.verifyOtp":        "Verify OTP",
		"auth.notRegistered":    "No account found for this email. Please register first.",
		"auth.invalidOtp":       "Incorrect or expired OTP. Please try again.",
		"auth.sessionExpired":   "Your session has expired. Please log in again.",
		"auth.registerSuccess":  "Registration successful. Check your email for an OTP.",
		"auth.profileUpdated":   "Profile updated successfully.",
		"auth.profileUpdateErr": "Could not update profile. Please try again.",

		"jobs.title":           "Available Jobs",
		"jobs.myJobs":          "My Jobs",
		"jobs.matching":        "Matching Jobs",
		"jobs.search":          "Search jobs",
		"jobs.apply":           "Apply",
		"jobs.applied":         "Applied",
		"jobs.alreadyApplied":  "You have already applied for this job.",
		"jobs.applySuccess":    "Application submitted.",
		"jobs.postJob":         "Post a Job",
		"jobs.postSuccess":     "Job posted successfully.",
		"jobs.selectApplicant": "Select Applicant",
		"jobs.markComplete":    "Mark as Completed",
		"jobs.wagePerDay":      "per day",
		"jobs.wagePerMonth":    "per month",
		"jobs.wageLumpSum":     "lump sum",
		"jobs.noJobs":          "No jobs found.",

		"status.open":              "Open",
		"status.candidateSelected": "Candidate Selected",
		"status.completed":         "Completed",
		"status.closed":            "Closed",
		"status.pending":           "Pending",
		"status.selected":          "Selected",
		"status.notSelected":       "Not Selected",

		"notifications.title":       "Notifications",
		"notifications.empty":       "No notifications yet.",
		"notifications.markAllRead": "Mark all as read",

		"common.loading": "Loading...",
		"common.retry":   "Retry",
		"common.cancel":  "Cancel",
		"common.save":    "Save",
		"common.error":   "Something went wrong. Please try again.",
		"common.network": "Unable to reach the server. Check your connection.",
	},
	Hindi: {
		"app.name":    "वर्कर्स ग्लोब",
		"app.tagline": "काम खोजें। कामगार खोजें।",

		"nav.home":          "होम",
		"nav.jobs":          "नौकरियाँ",
		"nav.applications":  "आवेदन",
		"nav.notifications": "सूचनाएँ",
		"nav.profile":       "प्रोफ़ाइल",
		"nav.login":         "लॉगिन",
		"nav.logout":        "लॉगआउट",
		"nav.register":      "पंजीकरण",

		"auth.email":            "ईमेल",
		"auth.otp":              "वन-टाइम पासवर्ड",
		"auth.sendOtp":          "OTP भेजें",
		"auth.verifyOtp":        "OTP सत्यापित करें",
		"auth.notRegistered":    "इस ईमेल के लिए कोई खाता नहीं मिला। कृपया पहले पंजीकरण करें।",
		"auth.invalidOtp":       "गलत या समाप्त OTP। कृपया पुनः प्रयास करें।",
		"auth.sessionExpired":   "आपका सत्र समाप्त हो गया है। कृपया फिर से लॉगिन करें।",
		"auth.registerSuccess":  "पंजीकरण सफल। OTP के लिए अपना ईमेल देखें।",
		"auth.profileUpdated":   "प्रोफ़ाइल सफलतापूर्वक अपडेट हुई।",
		"auth.profileUpdateErr": "प्रोफ़ाइल अपडेट नहीं हो सकी। कृपया पुनः प्रयास करें।",

		"jobs.title":           "उपलब्ध नौकरियाँ",
		"jobs.myJobs":          "मेरी नौकरियाँ",
		"jobs.matching":        "उपयुक्त नौकरियाँ",
		"jobs.search":          "नौकरी खोजें",
		"jobs.apply":           "आवेदन करें",
		"jobs.applied":         "आवेदन किया",
		"jobs.alreadyApplied":  "आपने इस नौकरी के लिए पहले ही आवेदन कर दिया है।",
		"jobs.applySuccess":    "आवेदन जमा हो गया।",
		"jobs.postJob":         "नौकरी पोस्ट करें",
		"jobs.postSuccess":     "नौकरी सफलतापूर्वक पोस्ट हुई।",
		"jobs.selectApplicant": "आवेदक चुनें",
		"jobs.markComplete":    "पूर्ण के रूप में चिह्नित करें",
		"jobs.wagePerDay":      "प्रति दिन",
		"jobs.wagePerMonth":    "प्रति माह",
		"jobs.wageLumpSum":     "एकमुश्त",
		"jobs.noJobs":          "कोई नौकरी नहीं मिली।",

		"status.open":              "खुली",
		"status.candidateSelected": "उम्मीदवार चयनित",
		"status.completed":         "पूर्ण",
		"status.closed":            "बंद",
		"status.pending":           "लंबित",
		"status.selected":          "चयनित",
		"status.notSelected":       "चयनित नहीं",

		"notifications.title":       "सूचनाएँ",
		"notifications.empty":       "अभी कोई सूचना नहीं।",
		"notifications.markAllRead": "सभी को पढ़ा हुआ चिह्नित करें",

		"common.loading": "लोड हो रहा है...",
		"common.retry":   "पुनः प्रयास करें",
		"common.cancel":  "रद्द करें",
		"common.save":    "सहेजें",
		"common.error":   "कुछ गलत हो गया। कृपया पुनः प्रयास करें।",
		"common.network": "सर्वर से संपर्क नहीं हो पा रहा। अपना कनेक्शन जाँचें।",
	},
}

// Supported lists the selectable languages in display order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether code has a catalog.
func IsSupported(code string) bool {
	_, ok := catalogs[code]
	return ok
}

// Service tracks the active language and persists the preference.
type Service struct {
	store  storage.Store
	logger logger.Logger

	mu      sync.RWMutex
	current string
}

func NewService(store storage.Store, log logger.Logger) *Service {
	return &Service{
		store:   store,
		logger:  log.WithFields(map[string]interface{}{"component": "language"}),
		current: defaultLanguage,
	}
}

// Load restores the persisted preference. An unknown or missing value
// leaves the default in place.
func (s *Service) Load(ctx context.Context) {
	val, err := s.store.Get(ctx, storage.KeySelectedLanguage)
	if err != nil {
		if err != storage.ErrNotFound {
			s.logger.Warn("could not load language preference", map[string]interface{}{"error": err.Error()})
		}
		return
	}
	if !IsSupported(val) {
		s.logger.Warn("ignoring unsupported persisted language", map[string]interface{}{"language": val})
		return
	}
	s.mu.Lock()
	s.current = val
	s.mu.Unlock()
}

// Current returns the active language code.
func (s *Service) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetLanguage switches the active language and persists the choice. An
// unsupported code is rejected without changing state.
func (s *Service) SetLanguage(ctx context.Context, code string) error {
	if !IsSupported(code) {
		return apierrors.NewValidationError("unsupported language: " + code)
	}

	s.mu.Lock()
	s.current = code
	s.mu.Unlock()

	if err := s.store.Set(ctx, storage.KeySelectedLanguage, code); err != nil {
		s.logger.Warn("could not persist language preference", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

// T resolves key in the active language, falling back to English and then
// to the key itself.
func (s *Service) T(key string) string {
	return Translate(s.Current(), key)
}

// Translate resolves key in the given language with the same fallback
// chain as T.
func Translate(lang, key string) string {
	if c, ok := catalogs[lang]; ok {
		if msg, ok := c[key]; ok {
			return msg
		}
	}
	if lang != English {
		if msg, ok := catalogs[English][key]; ok {
			return msg
		}
	}
	return key
}
