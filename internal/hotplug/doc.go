// Package hotplug notices display-adapter topology changes at runtime.
//
// On linux it subscribes to udev netlink events for the DRM subsystem and
// coalesces event bursts into a single notification, which callers typically
// wire to capability-cache invalidation. Other platforms get a no-op watcher.
package hotplug
