// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime pushes live tally updates to websocket subscribers.

The Hub keeps a room per poll. Connections join a room when the live
endpoint upgrades them (or later via a {"type":"join","poll_id":...} frame),
and leave every room when they disconnect. Publish is invoked once per
committed vote, after the commit is durable, and delivers a voteUpdate
envelope to the room.

Guarantees are deliberately loose at the edges: updates are in order per
subscriber, but delivery is best-effort - a full send buffer or a dropped
connection loses the update and the subscriber, never the vote. New
subscribers get no replay; they fetch the current tally over HTTP before
joining.

Single-process fan-out only. Running several instances would need a shared
pub/sub bus between them, which this system does not attempt.
*/
package realtime
