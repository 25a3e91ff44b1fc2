// Package slug derives file and URL safe identifiers from template names.
//
// Template slugs come from Go identifiers, so the case-splitting option is what
// the renderer uses:
//
//	slug.Make("AccountSecurityAlert", slug.SplitCase(true)) // "account-security-alert"
//	slug.Make("Welcome")                                     // "welcome"
//	slug.Title("AccountSecurityAlert")                       // "Account Security Alert"
//
// Diacritics are folded to ASCII ("Café" becomes "cafe"), any other character
// collapses into the separator, and leading or trailing separators are trimmed.
package slug
