// Package memo defines the records tracked by clerk: internal and external
// memos, their reference numbers, and the append-only routing history.
//
// A memo is logged once with status Pending and an initial location (the
// receiving department for internal memos, the sender for external ones).
// After that only two things happen to it: it is forwarded to another
// department, or it is approved. Both append a HistoryEntry and update
// Status and CurrentLocation together; nothing ever removes an entry.
//
// Reference numbers have the form PREFIX/YEAR/NNNN, e.g. NITT/DG/2025/4821.
package memo
