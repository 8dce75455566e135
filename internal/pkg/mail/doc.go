// Package mail sends email. Callers depend on the Mail interface; SMTP is
// the only delivery mechanism shipped.
package mail
