// Package userdata manages the ~/.tellnet/ directory: path resolution with an
// environment override, permission constants for the files holding member
// secrets, and the doctor checks that report (and optionally repair) missing
// directories, loose permissions and invalid or duplicated records.
package userdata
